package cli

import "github.com/spf13/cobra"

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the connect version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("connect " + Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
