package cmd

import (
	"eventsman/src-server/admin"
	"eventsman/src-server/store"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportFilterDate  string
	exportFilterEvent string
	exportOutput      string
)

var registrationExportCmd = &cobra.Command{
	Use:   "registration:export",
	Short: "Export registrations as CSV",
	Long: `Export the currently filtered registration set as CSV, header line
first, one line per registration. Use --output - to write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		regStore := store.NewRegistrationStore(as.BunDB, as.MetricChans)
		rows, err := regStore.ListRegistrations(cmd.Context(), exportFilterDate, exportFilterEvent)
		if err != nil {
			return err
		}

		response, err := admin.ExportCSV(rows, as.Config.GetLocation())
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			_, err := cmd.OutOrStdout().Write(response.Body)
			return err
		}
		if err := os.WriteFile(exportOutput, response.Body, 0o644); err != nil {
			return err
		}
		cmd.Printf("Wrote %d registrations to %s (%s)\n",
			len(rows), exportOutput, response.ContentType)
		return nil
	},
}

func init() {
	registrationExportCmd.Flags().StringVar(&exportFilterDate, "date", "", "filter by event date (YYYY-MM-DD)")
	registrationExportCmd.Flags().StringVar(&exportFilterEvent, "event", "", "filter by event id")
	registrationExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "registrations.csv", "output file, - for stdout")
	rootCmd.AddCommand(registrationExportCmd)
}
