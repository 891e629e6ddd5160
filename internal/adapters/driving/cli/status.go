package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [connector]",
	Short: "Show auth status for a connector",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	name := args[0]
	connector, err := statusService.GetConnector(cmd.Context(), name)
	if err != nil {
		return err
	}

	cmd.Println(headerStyle.Render(connector.DisplayName) + dimStyle.Render(" ("+connector.Name+")"))
	if !connector.Installed {
		cmd.Println(dimStyle.Render("not installed"))
		return nil
	}

	auth := connector.Auth
	if auth == nil {
		cmd.Println(dimStyle.Render("status unavailable"))
		return nil
	}
	cmd.Printf("Scheme:  %s\n", auth.Type)
	cmd.Printf("Status:  %s\n", statusBadge(auth.Configured))
	if auth.TokenExpiry > 0 {
		expiry := time.UnixMilli(auth.TokenExpiry)
		line := expiry.Format(time.RFC1123)
		if expiry.Before(time.Now()) {
			line = warnStyle.Render(line + " (expired)")
		}
		cmd.Printf("Expires: %s\n", line)
	}
	if auth.HasRefreshToken {
		cmd.Println("Refresh: " + successStyle.Render("refresh token stored"))
	}
	if len(auth.EnvVars) > 0 {
		cmd.Println("Environment:")
		for _, v := range auth.EnvVars {
			marker := dimStyle.Render("unset")
			if v.Set {
				marker = successStyle.Render("set")
			}
			cmd.Printf("  %-28s %s  %s\n", v.Variable, marker, dimStyle.Render(v.Description))
		}
	}
	return nil
}
