// Package workspace assembles the class registry every surface works from:
// builtins, the sample classes, TOML catalogs and imported Go packages, as
// selected by the configuration.
package workspace

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/catalog"
	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/goimport"
	"github.com/mabhi256/jprobe/internal/registry"
	"github.com/mabhi256/jprobe/internal/samples"
)

// Load builds a registry from cfg. Catalogs load in the order given so a
// later catalog may reference classes of an earlier one.
func Load(ctx context.Context, cfg *config.Config, logger *log.Logger) (*registry.ClassRegistry, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reg := registry.NewClassRegistry()

	if cfg.Samples {
		if err := samples.Register(reg); err != nil {
			return nil, fmt.Errorf("registering samples: %w", err)
		}
		logger.Debug("samples registered", "classes", len(samples.Classes()))
	}

	loader := catalog.NewLoader(reg, catalog.WithLogger(logger))
	for _, path := range cfg.Catalogs {
		classes, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := reg.RegisterAll(classes, path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if cfg.GoImport.Dir != "" {
		im := goimport.New(goimport.WithLogger(logger))
		classes, err := im.Import(ctx, cfg.GoImport.Dir, cfg.GoImport.Patterns...)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", cfg.GoImport.Dir, err)
		}
		if err := reg.RegisterAll(classes, cfg.GoImport.Dir); err != nil {
			return nil, fmt.Errorf("importing %s: %w", cfg.GoImport.Dir, err)
		}
	}

	logger.Debug("registry ready", "classes", reg.Count())
	return reg, nil
}

// Reload rebuilds reg in place from cfg. The new class set is loaded in full
// first, so a failing catalog or import leaves reg as it was.
func Reload(ctx context.Context, reg *registry.ClassRegistry, cfg *config.Config, logger *log.Logger) error {
	fresh, err := Load(ctx, cfg, logger)
	if err != nil {
		return err
	}

	reg.Clear()
	for _, info := range fresh.GetAllClasses() {
		if info.Source == registry.SourceBuiltin {
			continue
		}
		if err := reg.Register(info.Class, info.Source); err != nil {
			return err
		}
	}
	return nil
}
