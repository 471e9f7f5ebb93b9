package cmd

import (
	"eventsman/src-server/admin"

	"github.com/spf13/cobra"
)

var (
	settingsEnableNotifications bool
	settingsAdminEmail          string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change notification settings",
	Long: `Without flags, print the current settings. With flags, write both
values as a unit.

Examples:
  eventsman settings
  eventsman settings --enable-notifications --admin-email admin@example.com
  eventsman settings --enable-notifications=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !cmd.Flags().Changed("enable-notifications") && !cmd.Flags().Changed("admin-email") {
			settingsModel, err := admin.Settings(ctx, as.BunDB)
			if err != nil {
				return err
			}
			cmd.Printf("enable_notifications: %t\n", settingsModel.EnableNotifications)
			cmd.Printf("admin_email:          %s\n", settingsModel.AdminEmail)
			return nil
		}

		// start from the stored values so one flag doesn't clobber the other
		current, err := admin.Settings(ctx, as.BunDB)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("enable-notifications") {
			settingsEnableNotifications = current.EnableNotifications
		}
		if !cmd.Flags().Changed("admin-email") {
			settingsAdminEmail = current.AdminEmail
		}

		settingsModel, err := admin.UpdateSettings(ctx, as.BunDB, settingsEnableNotifications, settingsAdminEmail)
		if err != nil {
			return err
		}
		cmd.Printf("Settings saved: enable_notifications=%t admin_email=%q\n",
			settingsModel.EnableNotifications, settingsModel.AdminEmail)
		return nil
	},
}

func init() {
	settingsCmd.Flags().BoolVar(&settingsEnableNotifications, "enable-notifications", false, "send an admin notification on every registration")
	settingsCmd.Flags().StringVar(&settingsAdminEmail, "admin-email", "", "address receiving admin notifications")
	rootCmd.AddCommand(settingsCmd)
}
