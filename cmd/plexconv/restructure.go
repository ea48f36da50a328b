package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semidata/plexconv-cli/internal/apperr"
	"github.com/semidata/plexconv-cli/internal/batch"
	"github.com/semidata/plexconv-cli/internal/recordio"
	"github.com/semidata/plexconv-cli/internal/restructure"
)

var (
	restructureInput    string
	restructureOutput   string
	restructureWorkers  int
	restructureLogLevel string
)

// restructureCmd represents the restructure command
var restructureCmd = &cobra.Command{
	Use:   "restructure",
	Short: "Derive field-grouped V2 device records from Standard Records",
	Long:  "Read Standard Record JSON files and derive the field-grouped V2 device schema: ratings and static figures extracted from part numbers and comments, loss tables regrouped by test condition, and thermal totals computed from the RC chain.",
	RunE:  runRestructure,
}

func runRestructure(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("restructure.log-level")
	if err != nil {
		return err
	}
	log := newLogger(level, cmd.ErrOrStderr())

	input := viper.GetString("restructure.input")
	if input == "" {
		input = "standardized"
	}
	outDir := viper.GetString("restructure.output")
	if outDir == "" {
		outDir = "restructured"
	}

	files, err := batch.FindFiles(input, ".json")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return apperr.Userf("no .json files found under %s", input)
	}
	log.Logf("", "found %d record(s) under %s", len(files), input)

	opts := restructure.Options{Now: time.Now()}
	outputs := planOutputs(files, outDir, ".json")

	workers := viper.GetInt("restructure.workers")
	result := batch.Run(cmd.Context(), files, workers, log, func(path string) error {
		rec, err := recordio.ReadRecord(path)
		if err != nil {
			return err
		}
		v2 := restructure.Restructure(rec, opts)
		return recordio.WriteV2(v2, outputs[path])
	})

	printTally(cmd, result, outDir)
	return nil
}

func init() {
	restructureCmd.Flags().StringVarP(&restructureInput, "input", "i", "", "Directory of Standard Record JSON files (default \"standardized\")")
	restructureCmd.Flags().StringVarP(&restructureOutput, "output", "o", "", "Output directory for V2 records (default \"restructured\")")
	restructureCmd.Flags().IntVarP(&restructureWorkers, "workers", "w", 4, "Number of concurrent conversions")
	restructureCmd.Flags().StringVar(&restructureLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("restructure.input", restructureCmd.Flags().Lookup("input"))
	viper.BindPFlag("restructure.output", restructureCmd.Flags().Lookup("output"))
	viper.BindPFlag("restructure.workers", restructureCmd.Flags().Lookup("workers"))
	viper.BindPFlag("restructure.log-level", restructureCmd.Flags().Lookup("log-level"))
}
