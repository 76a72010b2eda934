package commands

import (
	"fmt"
	"os"

	"jobwatch/lib/jsonsplit"

	"github.com/spf13/cobra"
)

var (
	splitIDKey *string
	splitClean *bool
)

func init() {
	splitIDKey = splitCmd.Flags().String("id-key", "id", "Name of the ID field in each object.")
	splitClean = splitCmd.Flags().Bool("clean", false, "Delete and recreate the destination directory.")
	rootCmd.AddCommand(splitCmd)
}

var splitCmd = &cobra.Command{
	Use:   "split <json-file> <key> <dest-dir> [--id-key <name>] [--clean]",
	Short: "Splits the array under a key of a JSON file into one file per element.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		err := jsonsplit.Split(os.Stdout, args[0], args[1], args[2], jsonsplit.Options{
			IDKey: *splitIDKey,
			Clean: *splitClean,
		})
		if err != nil {
			// input errors are reported on stdout, not stderr
			fmt.Printf("Error: %s\n", err)
			os.Exit(1)
		}
	},
}
