package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog connectors with install and auth state",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	connectors, err := statusService.ListConnectors(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println(headerStyle.Render(fmt.Sprintf("%-16s %-12s %-10s %s", "NAME", "CATEGORY", "SCHEME", "STATUS")))
	for _, c := range connectors {
		scheme := dimStyle.Render("-")
		status := dimStyle.Render("not installed")
		if c.Installed && c.Auth != nil {
			scheme = string(c.Auth.Type)
			status = statusBadge(c.Auth.Configured)
		}
		cmd.Printf("%-16s %-12s %-10s %s\n", c.Name, c.Category, scheme, status)
	}
	return nil
}
