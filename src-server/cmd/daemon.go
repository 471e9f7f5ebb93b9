package cmd

import (
	"eventsman/src-server/metric"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the metric collectors and /metrics endpoint",
	Long:  `Serve Prometheus metrics on METRIC_PORT until SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		go metric.Init(as)

		go func() {
			muxer := http.NewServeMux()
			muxer.Handle("GET /metrics", promhttp.Handler())
			if err := http.ListenAndServe(":"+as.Config.GetMetricPort(), muxer); err != nil {
				slog.Error("cannot start HTTP server", "error", err)
				as.AppCloseSignalChan <- syscall.SIGTERM
			}
		}()

		slog.Info("daemon is now running, press Ctrl+C to exit")
		signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		<-as.AppCloseSignalChan
		as.GracefulShutdown()
		slog.Info("Gracefully shutting down...")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
