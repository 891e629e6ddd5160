package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cbserver "github.com/custodia-labs/connect-cli/internal/adapters/driving/oauth"
)

// loginTimeout bounds how long the CLI waits for the provider redirect.
const loginTimeout = 5 * time.Minute

var oauthCmd = &cobra.Command{
	Use:   "oauth",
	Short: "Drive OAuth flows from the terminal",
}

var oauthLoginCmd = &cobra.Command{
	Use:   "login [connector]",
	Short: "Authorize a connector in the browser",
	Long: `Start the OAuth authorization flow for a connector.

A temporary loopback server receives the provider redirect; the browser
opens on the provider's consent page. Requires a stored or environment
OAuth client (clientId/clientSecret).`,
	Args: cobra.ExactArgs(1),
	RunE: runOAuthLogin,
}

var oauthRefreshCmd = &cobra.Command{
	Use:   "refresh [connector]",
	Short: "Refresh a connector's access token",
	Args:  cobra.ExactArgs(1),
	RunE:  runOAuthRefresh,
}

func init() {
	oauthCmd.AddCommand(oauthLoginCmd)
	oauthCmd.AddCommand(oauthRefreshCmd)
	rootCmd.AddCommand(oauthCmd)
}

func runOAuthLogin(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := cmd.Context()

	callback := cbserver.NewCallbackServer(0)
	if err := callback.Start(); err != nil {
		return err
	}
	defer callback.Stop()

	authURL, err := oauthService.StartFlow(ctx, name, callback.RedirectURI())
	if err != nil {
		return err
	}

	cmd.Println("Opening browser for authorization...")
	if err := cbserver.OpenBrowser(authURL); err != nil {
		cmd.Println(warnStyle.Render("Could not open a browser; visit this URL:"))
		cmd.Println(authURL)
	}

	cb, err := callback.Wait(loginTimeout)
	if err != nil {
		return err
	}

	result, err := oauthService.HandleCallback(ctx, name, cb.Code, cb.State)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("%s authorized.", name)
	if result.ExpiresAt > 0 {
		msg += " Token expires " + time.UnixMilli(result.ExpiresAt).Format(time.RFC1123) + "."
	}
	cmd.Println(successStyle.Render(msg))
	return nil
}

func runOAuthRefresh(cmd *cobra.Command, args []string) error {
	name := args[0]
	result, err := oauthService.Refresh(cmd.Context(), name)
	if err != nil {
		return err
	}
	if result.ExpiresAt > 0 {
		cmd.Println(successStyle.Render(fmt.Sprintf(
			"Token refreshed, expires %s.", time.UnixMilli(result.ExpiresAt).Format(time.RFC1123))))
		return nil
	}
	cmd.Println(successStyle.Render("Token refreshed."))
	return nil
}
