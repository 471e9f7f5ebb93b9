package cmd

import (
	"eventsman/src-server/admin"
	"eventsman/src-server/store"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listFilterDate  string
	listFilterEvent string
)

var registrationListCmd = &cobra.Command{
	Use:   "registration:list",
	Short: "List registrations",
	Long: `List registrations joined with their event date, newest last.

The date -> event filter cascade covers ALL events, open or not.

Examples:
  eventsman registration:list
  eventsman registration:list --date 2024-05-01
  eventsman registration:list --date 2024-05-01 --event <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := admin.Listing(
			cmd.Context(),
			as.BunDB,
			store.NewRegistrationStore(as.BunDB, as.MetricChans),
			listFilterDate,
			listFilterEvent,
		)
		if err != nil {
			return err
		}

		if listFilterDate == "" && len(page.Dates) > 0 {
			cmd.Println("Filterable event dates:", page.Dates)
		}
		if listFilterDate != "" && listFilterEvent == "" {
			for _, event := range page.Events {
				cmd.Printf("Filterable event: %s  %s\n", event.ID, event.Name)
			}
		}

		if len(page.Rows) == 0 {
			cmd.Println("No registrations found.")
			return nil
		}

		writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(writer, "NAME\tEMAIL\tEVENT DATE\tCOLLEGE\tDEPARTMENT\tSUBMISSION DATE")
		for _, row := range page.Rows {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
				row.FullName,
				row.Email,
				row.EventDate,
				row.College,
				row.Department,
				admin.FormatSubmissionDate(row.Created, as.Config.GetLocation()),
			)
		}
		if err := writer.Flush(); err != nil {
			return err
		}
		cmd.Printf("Total Participants: %d\n", page.Total)
		return nil
	},
}

func init() {
	registrationListCmd.Flags().StringVar(&listFilterDate, "date", "", "filter by event date (YYYY-MM-DD)")
	registrationListCmd.Flags().StringVar(&listFilterEvent, "event", "", "filter by event id")
	rootCmd.AddCommand(registrationListCmd)
}
