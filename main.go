package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	cmd "github.com/semidata/plexconv-cli/cmd/plexconv"
	"github.com/semidata/plexconv-cli/internal/apperr"
	"github.com/semidata/plexconv-cli/internal/ui"
	"github.com/semidata/plexconv-cli/internal/version"
)

func main() {
	cmd.SetVersion(version.Get())
	if err := fang.Execute(
		context.Background(),
		cmd.GetRootCmd(),
		fang.WithColorSchemeFunc(ui.FangColorScheme),
	); err != nil {
		// User deliberately cancelled – not a failure.
		if errors.Is(err, apperr.ErrCancelled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
