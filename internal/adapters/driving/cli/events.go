package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events [connector]",
	Short: "Show recent auth activity",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvents,
}

var eventsLimit int

func init() {
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 20, "Maximum events to show")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	if eventStore == nil {
		cmd.Println(dimStyle.Render("event log unavailable"))
		return nil
	}

	connector := ""
	if len(args) == 1 {
		connector = args[0]
	}

	events, err := eventStore.List(cmd.Context(), connector, eventsLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		cmd.Println(dimStyle.Render("no events"))
		return nil
	}

	for _, ev := range events {
		line := ev.CreatedAt.Local().Format(time.DateTime) + "  " + ev.Connector + "  " + string(ev.Kind)
		if ev.Detail != "" {
			line += "  " + dimStyle.Render(ev.Detail)
		}
		cmd.Println(line)
	}
	return nil
}
