package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semidata/plexconv-cli/internal/apperr"
	"github.com/semidata/plexconv-cli/internal/batch"
	"github.com/semidata/plexconv-cli/internal/record"
	"github.com/semidata/plexconv-cli/internal/recordio"
	"github.com/semidata/plexconv-cli/internal/render"
	"github.com/semidata/plexconv-cli/internal/ui"
)

var (
	exportInput    string
	exportOutput   string
	exportFormats  []string
	exportWorkers  int
	exportLogLevel string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render Standard Records as XML, MAT, PDF, HTML, plots or XLSX",
	Long:  "Read Standard Record JSON files and render the requested output formats. Per-file formats write one artifact per record; xlsx writes a single batch summary workbook. A failing format is reported as a warning and the remaining formats still render.",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("export.log-level")
	if err != nil {
		return err
	}
	log := newLogger(level, cmd.ErrOrStderr())

	input := viper.GetString("export.input")
	if input == "" {
		input = "standardized"
	}
	outDir := viper.GetString("export.output")
	if outDir == "" {
		outDir = "export"
	}

	formats, err := render.ParseFormats(viper.GetStringSlice("export.formats"))
	if err != nil {
		return apperr.User(err.Error())
	}
	if len(formats) == 0 {
		formats = []render.Format{render.FormatXML}
	}
	wantSummary := false
	var fileFormats []render.Format
	for _, f := range formats {
		if f == render.FormatXLSX {
			wantSummary = true
			continue
		}
		fileFormats = append(fileFormats, f)
	}

	files, err := batch.FindFiles(input, ".json")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return apperr.Userf("no .json files found under %s", input)
	}
	log.Logf("", "exporting %d record(s) as %s", len(files), joinFormats(formats))

	// One output path per input file per format, assigned before the pool
	// starts. Plot paths are prefixes, not files.
	outputs := make(map[render.Format]map[string]string, len(fileFormats))
	for _, f := range fileFormats {
		if f == render.FormatPlot {
			prefixes := make(map[string]string, len(files))
			for _, file := range files {
				stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				prefixes[file] = filepath.Join(outDir, stem)
			}
			outputs[f] = prefixes
			continue
		}
		outputs[f] = planOutputs(files, outDir, render.Ext(f))
	}

	var (
		mu      sync.Mutex
		recs    []*record.Record
		warned  int
		workers = viper.GetInt("export.workers")
	)

	result := batch.Run(cmd.Context(), files, workers, log, func(path string) error {
		rec, err := recordio.ReadRecord(path)
		if err != nil {
			return err
		}
		for _, f := range fileFormats {
			if err := render.File(rec, f, outputs[f][path]); err != nil {
				log.Logf(filepath.Base(path), "format %s failed: %v", f, err)
				mu.Lock()
				warned++
				mu.Unlock()
			}
		}
		if wantSummary {
			mu.Lock()
			recs = append(recs, rec)
			mu.Unlock()
		}
		return nil
	})

	if wantSummary {
		// Restore input order; workers finish in arbitrary order.
		sortRecords(recs)
		summaryPath := filepath.Join(outDir, "summary.xlsx")
		if err := render.WriteSummary(recs, summaryPath); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s summary written to %s\n", ui.GetCheckMark(), summaryPath)
	}
	if warned > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d format warning(s), see log output\n", ui.GetWarnMark(), warned)
	}
	printTally(cmd, result, outDir)
	return nil
}

func sortRecords(recs []*record.Record) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Metadata.SourceFile < recs[j].Metadata.SourceFile
	})
}

func joinFormats(formats []render.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Directory of Standard Record JSON files (default \"standardized\")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output directory for rendered artifacts (default \"export\")")
	exportCmd.Flags().StringSliceVarP(&exportFormats, "formats", "f", []string{"xml"}, "Output formats: xml|mat|pdf|html|plot|xlsx (comma-separated or repeated)")
	exportCmd.Flags().IntVarP(&exportWorkers, "workers", "w", 4, "Number of concurrent conversions")
	exportCmd.Flags().StringVar(&exportLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("export.input", exportCmd.Flags().Lookup("input"))
	viper.BindPFlag("export.output", exportCmd.Flags().Lookup("output"))
	viper.BindPFlag("export.formats", exportCmd.Flags().Lookup("formats"))
	viper.BindPFlag("export.workers", exportCmd.Flags().Lookup("workers"))
	viper.BindPFlag("export.log-level", exportCmd.Flags().Lookup("log-level"))
}
