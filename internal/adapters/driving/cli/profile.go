package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage credential profiles per connector",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [connector]",
	Short: "Show the active profile's credential fields (secrets masked)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileListCmd = &cobra.Command{
	Use:   "list [connector]",
	Short: "List a connector's profiles",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileList,
}

var profileUseCmd = &cobra.Command{
	Use:   "use [connector] [profile]",
	Short: "Switch the connector's active profile",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileUse,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	rootCmd.AddCommand(profileCmd)
}

// secretFields are masked in profile output.
var secretFields = map[string]bool{
	"apiKey":       true,
	"bearerToken":  true,
	"clientSecret": true,
	"accessToken":  true,
	"refreshToken": true,
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	rec, err := credentialService.Record(cmd.Context(), name)
	if err != nil {
		return err
	}
	_, current, err := credentialService.Profiles(cmd.Context(), name)
	if err != nil {
		return err
	}

	cmd.Printf("%s %s\n", headerStyle.Render(name), dimStyle.Render("profile="+current))
	if len(rec) == 0 {
		cmd.Println(dimStyle.Render("no stored credentials"))
		return nil
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := rec.GetString(k)
		if v == "" {
			cmd.Printf("  %-16s %v\n", k, rec[k])
			continue
		}
		if secretFields[k] {
			v = mask(v)
		}
		cmd.Printf("  %-16s %s\n", k, v)
	}
	return nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	profiles, current, err := credentialService.Profiles(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		cmd.Println(dimStyle.Render("no profiles"))
		return nil
	}
	for _, p := range profiles {
		marker := "  "
		if p == current {
			marker = successStyle.Render("* ")
		}
		cmd.Println(marker + p)
	}
	return nil
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	if err := credentialService.UseProfile(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	cmd.Println(successStyle.Render("Switched to profile " + args[1] + "."))
	return nil
}

// mask keeps a short prefix for recognisability.
func mask(v string) string {
	if len(v) <= 8 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", 8)
}
