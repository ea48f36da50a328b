package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semidata/plexconv-cli/internal/apperr"
	"github.com/semidata/plexconv-cli/internal/batch"
	"github.com/semidata/plexconv-cli/internal/plecs"
	"github.com/semidata/plexconv-cli/internal/recordio"
)

var (
	standardizeInput    string
	standardizeOutput   string
	standardizeAuthor   string
	standardizeManifest string
	standardizeWorkers  int
	standardizeLogLevel string
)

// standardizeCmd represents the standardize command
var standardizeCmd = &cobra.Command{
	Use:   "standardize",
	Short: "Convert vendor PLECS XML files into Standard Record JSON",
	Long:  "Walk a directory tree of vendor PLECS XML device models and convert each file into a canonical Standard Record JSON document. Material, manufacturer and package type are inferred from the directory layout; the XML vendor attribute wins over the path when both exist.",
	RunE:  runStandardize,
}

func runStandardize(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("standardize.log-level")
	if err != nil {
		return err
	}
	log := newLogger(level, cmd.ErrOrStderr())

	input := viper.GetString("standardize.input")
	if input == "" {
		return apperr.User("--input directory is required")
	}
	outDir := viper.GetString("standardize.output")
	if outDir == "" {
		outDir = "standardized"
	}

	var manifest *plecs.Manifest
	if path := viper.GetString("standardize.manifest"); path != "" {
		manifest, err = plecs.LoadManifest(path)
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
	}

	files, err := batch.FindFiles(input, ".xml")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return apperr.Userf("no .xml files found under %s", input)
	}
	log.Logf("", "found %d xml file(s) under %s", len(files), input)

	opts := plecs.DecodeOptions{
		Author:   resolveAuthor("standardize.author"),
		Now:      time.Now(),
		Root:     input,
		Manifest: manifest,
	}
	outputs := planOutputs(files, outDir, ".json")

	workers := viper.GetInt("standardize.workers")
	result := batch.Run(cmd.Context(), files, workers, log, func(path string) error {
		rec, err := plecs.DecodeFile(path, opts)
		if err != nil {
			return err
		}
		return recordio.WriteRecord(rec, outputs[path])
	})

	printTally(cmd, result, outDir)
	return nil
}

func init() {
	standardizeCmd.Flags().StringVarP(&standardizeInput, "input", "i", "", "Root directory containing vendor XML files")
	standardizeCmd.Flags().StringVarP(&standardizeOutput, "output", "o", "", "Output directory for Standard Record JSON (default \"standardized\")")
	standardizeCmd.Flags().StringVar(&standardizeAuthor, "author", "", "Author recorded in the output metadata (default $USER)")
	standardizeCmd.Flags().StringVar(&standardizeManifest, "manifest", "", "YAML manifest listing manufacturer folder names")
	standardizeCmd.Flags().IntVarP(&standardizeWorkers, "workers", "w", 4, "Number of concurrent conversions")
	standardizeCmd.Flags().StringVar(&standardizeLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("standardize.input", standardizeCmd.Flags().Lookup("input"))
	viper.BindPFlag("standardize.output", standardizeCmd.Flags().Lookup("output"))
	viper.BindPFlag("standardize.author", standardizeCmd.Flags().Lookup("author"))
	viper.BindPFlag("standardize.manifest", standardizeCmd.Flags().Lookup("manifest"))
	viper.BindPFlag("standardize.workers", standardizeCmd.Flags().Lookup("workers"))
	viper.BindPFlag("standardize.log-level", standardizeCmd.Flags().Lookup("log-level"))
}
