package cmd

import (
	"eventsman/src-server/admin"
	"eventsman/src-server/model"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	eventAddName     string
	eventAddCategory string
	eventAddDate     string
	eventAddRegStart string
	eventAddRegEnd   string
)

var eventAddCmd = &cobra.Command{
	Use:   "event:add",
	Short: "Create a new event",
	Long: `Create a new event with its registration window.

Dates accept YYYY-MM-DD or natural language ("next friday").

Examples:
  eventsman event:add --name "Robo Hack" --category Hackathon \
    --date 2024-05-01 --reg-start 2024-04-01 --reg-end 2024-04-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eventModel, err := admin.CreateEvent(
			cmd.Context(),
			as.BunDB,
			as.When,
			as.Config.GetLocation(),
			admin.EventInput{
				Name:         eventAddName,
				Category:     eventAddCategory,
				EventDate:    eventAddDate,
				RegStartDate: eventAddRegStart,
				RegEndDate:   eventAddRegEnd,
			})
		if err != nil {
			// the admin path shows the underlying error text
			cmd.PrintErrf("Error creating event: %v\n", err)
			return errHandled
		}

		cmd.Printf("Event created successfully.\n")
		cmd.Printf("  id:       %s\n", eventModel.ID)
		cmd.Printf("  name:     %s\n", eventModel.Name)
		cmd.Printf("  category: %s\n", eventModel.Category)
		cmd.Printf("  date:     %s (registration %s .. %s)\n",
			eventModel.EventDate, eventModel.RegStartDate, eventModel.RegEndDate)
		return nil
	},
}

func init() {
	eventAddCmd.Flags().StringVar(&eventAddName, "name", "", "event name")
	eventAddCmd.Flags().StringVar(&eventAddCategory, "category", "",
		"event category, one of: "+strings.Join(model.Categories, ", "))
	eventAddCmd.Flags().StringVar(&eventAddDate, "date", "", "event date")
	eventAddCmd.Flags().StringVar(&eventAddRegStart, "reg-start", "", "registration window start")
	eventAddCmd.Flags().StringVar(&eventAddRegEnd, "reg-end", "", "registration window end")
	for _, flag := range []string{"name", "category", "date", "reg-start", "reg-end"} {
		if err := eventAddCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("event:add: %v", err))
		}
	}
	rootCmd.AddCommand(eventAddCmd)
}
