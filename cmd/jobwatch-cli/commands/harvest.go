package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"jobwatch/lib/dump"
	"jobwatch/lib/scrapers/applitrack"
	"jobwatch/lib/serviceutil"
	"jobwatch/lib/snapshot"
	"jobwatch/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	harvestDebug *bool
	harvestIndex *bool
)

func init() {
	harvestDebug = harvestCmd.Flags().Bool("debug", false, "Write intermediate HTML artifacts and verbose extraction diagnostics.")
	harvestIndex = harvestCmd.Flags().Bool("index", false, "Overwrite the index file instead of writing a timestamped snapshot.")
	rootCmd.AddCommand(harvestCmd)
}

var harvestCmd = &cobra.Command{
	Use:   "harvest [--debug] [--index]",
	Short: "Scrapes the job postings page and writes a JSON snapshot.",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*harvestDebug)
		tel, err := telemetry.SetupFromEnv(cmd.Context(), "jobwatch-cli")
		if err == nil {
			defer tel.Shutdown(context.Background())
		} else if !os.IsNotExist(err) {
			slog.Warn("failed to setup telemetry", "err", err)
		}

		cfg := loadConfig()
		client, err := applitrack.New(applitrack.Options{
			District:  cfg.District,
			UserAgent: cfg.UserAgent,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize scraper", err)
		}

		if *harvestDebug {
			slog.Info("running in debug mode")
			sink, err := dump.NewSink(cfg.OutputDir)
			if err != nil {
				serviceutil.Fatal("failed to create debug artifact directory", err)
			}
			client.EnableDebug(sink)
		}
		if *harvestIndex {
			slog.Info("running in index mode", "file", snapshot.IndexFilename)
		}

		jobs, err := client.Harvest(serviceutil.SignalContext())
		if err != nil {
			serviceutil.Fatal("failed to harvest job postings", err)
		}
		if len(jobs) == 0 {
			slog.Info("no job postings found")
			return
		}

		now := time.Now()
		col := snapshot.New(cfg.Source, jobs, now)
		w := snapshot.Writer{Dir: cfg.OutputDir}

		var path string
		if *harvestIndex {
			path, err = w.WriteIndex(col)
		} else {
			path, err = w.WriteSnapshot(col, now)
		}
		if err != nil {
			serviceutil.Fatal("failed to save jobs", err)
		}

		slog.Info("saved jobs", "count", len(jobs), "file", path)
	},
}
