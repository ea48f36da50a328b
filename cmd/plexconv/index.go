package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semidata/plexconv-cli/internal/apperr"
	"github.com/semidata/plexconv-cli/internal/batch"
	"github.com/semidata/plexconv-cli/internal/library"
	"github.com/semidata/plexconv-cli/internal/recordio"
	"github.com/semidata/plexconv-cli/internal/ui"
)

var (
	indexInput    string
	indexDB       string
	indexList     bool
	indexLogLevel string
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or list the embedded device index",
	Long:  "Load V2 device records into an embedded key-value index keyed by device_id, or list what the index already holds. Re-indexing the same device replaces its entry.",
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("index.log-level")
	if err != nil {
		return err
	}
	log := newLogger(level, cmd.ErrOrStderr())

	dbPath := viper.GetString("index.db")
	if dbPath == "" {
		dbPath = "devices.db"
	}
	lib, err := library.Open(dbPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	if viper.GetBool("index.list") {
		return listIndex(cmd, lib)
	}

	input := viper.GetString("index.input")
	if input == "" {
		input = "restructured"
	}
	files, err := batch.FindFiles(input, ".json")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return apperr.Userf("no .json files found under %s", input)
	}

	// The index is a single-writer store, so files load sequentially.
	indexed, failed := 0, 0
	for _, file := range files {
		rec, err := recordio.ReadV2(file)
		if err == nil {
			err = lib.Put(rec)
		}
		if err != nil {
			failed++
			log.Logf(file, "failed: %v", err)
			continue
		}
		indexed++
	}

	total, err := lib.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d record(s) indexed, %d in %s\n",
		ui.GetCheckMark(), indexed, total, dbPath)
	if failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d record(s) failed\n", ui.GetCrossMark(), failed)
	}
	return nil
}

func listIndex(cmd *cobra.Command, lib *library.Library) error {
	entries, err := lib.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "index is empty")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE ID\tMANUFACTURER\tPART\tTECHNOLOGY\tVDS MAX")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.DeviceID, e.Manufacturer, e.PartNumber, e.Technology, e.VdsMax)
	}
	return w.Flush()
}

func init() {
	indexCmd.Flags().StringVarP(&indexInput, "input", "i", "", "Directory of V2 record JSON files (default \"restructured\")")
	indexCmd.Flags().StringVar(&indexDB, "db", "", "Index database file (default \"devices.db\")")
	indexCmd.Flags().BoolVarP(&indexList, "list", "l", false, "List indexed devices instead of indexing")
	indexCmd.Flags().StringVar(&indexLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("index.input", indexCmd.Flags().Lookup("input"))
	viper.BindPFlag("index.db", indexCmd.Flags().Lookup("db"))
	viper.BindPFlag("index.list", indexCmd.Flags().Lookup("list"))
	viper.BindPFlag("index.log-level", indexCmd.Flags().Lookup("log-level"))
}
