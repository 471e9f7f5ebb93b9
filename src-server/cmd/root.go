package cmd

import (
	"errors"
	"eventsman/src-server/utils"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var as *utils.AppState

// returned by commands that already printed their own failure message
var errHandled = errors.New("handled")

var rootCmd = &cobra.Command{
	Use:   "eventsman",
	Short: "Event registration management",
	Long: `Create events, collect attendee registrations with cascading
category/date/event filters, list and export registrations, and manage
notification settings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		as = utils.NewAppState()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHandled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
