package cmd

import (
	"eventsman/src-server/store"
	"eventsman/src-server/workflow"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var registerSelection workflow.Selection

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register an attendee for an event",
	Long: `Register an attendee. Run with a partial selection to see the next
option set of the cascade, then narrow it down:

  # 1. which categories are open for registration today?
  eventsman register

  # 2. which dates does that category have?
  eventsman register --category Hackathon

  # 3. which events run on that date?
  eventsman register --category Hackathon --date 2024-05-01

  # 4. submit
  eventsman register --category Hackathon --date 2024-05-01 --event <id> \
    --full-name "John Doe" --email john@example.com \
    --college "Some College" --department CSE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		// one reference instant for the whole render, so the cascade
		// stays consistent
		today := time.Now().In(as.Config.GetLocation())

		regWorkflow := workflow.NewWorkflow(
			as.BunDB,
			store.NewRegistrationStore(as.BunDB, as.MetricChans),
			as.Mailer,
			as.MetricChans,
		)

		if registerSelection.Category == "" ||
			registerSelection.EventDate == "" ||
			registerSelection.EventID == "" {
			form, err := regWorkflow.Resolve(ctx, registerSelection, today)
			if err != nil {
				slog.Error("can't resolve registration options", "error", err)
				cmd.PrintErrln("Registration failed. Please try again.")
				return errHandled
			}
			printForm(cmd, form)
			return nil
		}

		result, err := regWorkflow.Submit(ctx, registerSelection, today)
		if err != nil {
			// the registrant never sees the raw store error
			slog.Error("registration failed", "error", err)
			cmd.PrintErrln("Registration failed. Please try again.")
			return errHandled
		}
		if len(result.FieldErrors) > 0 {
			for _, fieldErr := range result.FieldErrors {
				cmd.PrintErrln(fieldErr.Message)
			}
			return errHandled
		}

		cmd.Println("Registration successful!")
		return nil
	},
}

func printForm(cmd *cobra.Command, form *workflow.Form) {
	switch form.State {
	case workflow.StateNoCategory:
		if len(form.Categories) == 0 {
			cmd.Println("No events are open for registration today.")
			return
		}
		cmd.Println("Open categories:")
		for _, category := range form.Categories {
			cmd.Printf("  %s\n", category)
		}
	case workflow.StateCategorySelected:
		if len(form.Dates) == 0 {
			cmd.Println("No open dates in this category.")
			return
		}
		cmd.Println("Open event dates:")
		for _, date := range form.Dates {
			cmd.Printf("  %s\n", date)
		}
	case workflow.StateDateSelected:
		if len(form.Events) == 0 {
			cmd.Println("No open events on this date.")
			return
		}
		cmd.Println("Open events:")
		for _, event := range form.Events {
			cmd.Printf("  %s  %s\n", event.ID, event.Name)
		}
	}
}

func init() {
	registerCmd.Flags().StringVar(&registerSelection.Category, "category", "", "event category")
	registerCmd.Flags().StringVar(&registerSelection.EventDate, "date", "", "event date (YYYY-MM-DD)")
	registerCmd.Flags().StringVar(&registerSelection.EventID, "event", "", "event id")
	registerCmd.Flags().StringVar(&registerSelection.FullName, "full-name", "", "attendee full name")
	registerCmd.Flags().StringVar(&registerSelection.Email, "email", "", "attendee email address")
	registerCmd.Flags().StringVar(&registerSelection.College, "college", "", "attendee college name")
	registerCmd.Flags().StringVar(&registerSelection.Department, "department", "", "attendee department")
	rootCmd.AddCommand(registerCmd)
}
