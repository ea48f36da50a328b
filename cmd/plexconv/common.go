package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semidata/plexconv-cli/internal/batch"
	"github.com/semidata/plexconv-cli/internal/logging"
	"github.com/semidata/plexconv-cli/internal/ui"
)

// resolveLogLevel reads and validates the per-command log level from viper.
func resolveLogLevel(key string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(key)))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", fmt.Errorf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// newLogger builds the batch logger for a level. Quiet mode drops per-file
// output entirely; debug mode keeps the file field.
func newLogger(level string, w io.Writer) *logging.Logger {
	if level == "quiet" {
		return nil
	}
	return &logging.Logger{
		Writer:      w,
		PrefixText:  "plexconv:",
		PrefixColor: ui.FgCyan,
		OmitFile:    level != "debug",
	}
}

// resolveAuthor falls back from the flag to the environment.
func resolveAuthor(key string) string {
	if a := strings.TrimSpace(viper.GetString(key)); a != "" {
		return a
	}
	if a := os.Getenv("USER"); a != "" {
		return a
	}
	return "plexconv"
}

// planOutputs assigns every input file a unique output path before the
// workers start, so concurrent conversions never race on name resolution.
// The counter loop checks both the in-batch pending set and the disk:
// a suffix that dodges one can still collide with the other.
func planOutputs(files []string, dir, ext string) map[string]string {
	taken := make(map[string]bool, len(files))
	out := make(map[string]string, len(files))
	for _, file := range files {
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		path := batch.UniquePath(dir, stem, ext)
		for counter := 1; taken[path] || batch.Exists(path); counter++ {
			path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		}
		taken[path] = true
		out[file] = path
	}
	return out
}

// printTally reports the batch outcome and lists the failed files.
func printTally(cmd *cobra.Command, result batch.Result, outDir string) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", ui.GetCheckMark(),
		fmt.Sprintf("%d file(s) converted to %s", result.Converted, outDir))
	if result.Errors == 0 {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ui.GetCrossMark(), fmt.Sprintf("%d file(s) failed", result.Errors))
	for _, f := range result.Failures {
		fmt.Fprintf(w, "  %s %s %s\n", ui.GetBullet(),
			filepath.Base(f.File), ui.Error.Render(f.Err.Error()))
	}
}
