package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored connector credentials",
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [connector]",
	Short: "Store an API key or token for a connector",
	Long: `Store an API key or token in the connector's active profile.

Without --key the value is prompted for without echo. The --field flag
overrides the scheme-appropriate default field (apiKey or bearerToken),
e.g. --field clientId to store an OAuth client ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

var configClearCmd = &cobra.Command{
	Use:   "clear [connector]",
	Short: "Remove the connector's stored credentials",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigClear,
}

var (
	configKeyValue string
	configKeyField string
)

func init() {
	configSetKeyCmd.Flags().StringVar(&configKeyValue, "key", "", "The key value (prompted without echo if omitted)")
	configSetKeyCmd.Flags().StringVar(&configKeyField, "field", "", "Credential field to store under")

	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configClearCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	name := args[0]

	key := configKeyValue
	if key == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Enter key for %s: ", name)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		key = string(raw)
	}

	if err := credentialService.SaveKey(cmd.Context(), name, configKeyField, key); err != nil {
		return err
	}
	cmd.Println(successStyle.Render("Saved."))
	return nil
}

func runConfigClear(cmd *cobra.Command, args []string) error {
	if err := credentialService.Clear(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Println(successStyle.Render("Cleared."))
	return nil
}
