// Package commands implements the shapematch CLI subcommands.
package commands

import (
	"log/slog"

	"github.com/Sumatoshi-tech/shapematch/internal/config"
)

// Options carries the resolved configuration and logger into subcommands.
// The root command populates it in PersistentPreRunE, before any RunE fires.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
}
