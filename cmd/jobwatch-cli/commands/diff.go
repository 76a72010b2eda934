package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jobwatch/lib/jobdiff"
	"jobwatch/lib/serviceutil"
	"jobwatch/lib/snapshot"
	"jobwatch/lib/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compares the current index against its previous committed revision.",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(false)
		cfg := loadConfig()

		indexPath := filepath.Join(cfg.OutputDir, snapshot.IndexFilename)
		slog.Info("analyzing job changes", "index", indexPath)

		current, err := snapshot.Load(indexPath)
		if err != nil {
			serviceutil.Fatal("failed to load current index", err)
		}

		previous, err := jobdiff.LoadPrevious(".", filepath.ToSlash(indexPath))
		if errors.Is(err, jobdiff.ErrNoPrevious) {
			fmt.Println("No previous version found - this appears to be the first commit with this file")
			return
		}
		if err != nil {
			serviceutil.Fatal("failed to load previous index", err)
		}

		res := jobdiff.Compare(current, previous)
		jobdiff.WriteReport(os.Stdout, res, current, previous)
	},
}
