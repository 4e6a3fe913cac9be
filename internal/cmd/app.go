package cmd

import (
	"fmt"
	"os"

	"github.com/viosson/agentorg/internal/catalog"
	"github.com/viosson/agentorg/internal/config"
	"github.com/viosson/agentorg/internal/logging"
	"github.com/viosson/agentorg/internal/org"
	"github.com/viosson/agentorg/internal/store"
	"github.com/viosson/agentorg/internal/unit"
)

// App wires the registries, stores, and coordinator for one CLI invocation.
type App struct {
	Config      *config.Config
	Logger      *logging.Logger
	Coordinator *org.Coordinator
}

// newApp loads configuration, opens the stores, restores persisted state,
// and builds the coordinator. A corrupt data file is reported once and the
// affected registry starts empty.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	deptStore := store.NewDepartmentStore(cfg.Storage.DepartmentsPath())
	unitStore := store.NewUnitStore(cfg.Storage.UnitsPath())

	depts := catalog.NewRegistry(catalog.WithSaver(deptStore), catalog.WithLogger(logger))
	units := unit.NewRegistry(unit.WithSaver(unitStore), unit.WithLogger(logger))

	if snaps, err := deptStore.Load(); err != nil {
		logger.Warn("department file unreadable, starting empty", "path", deptStore.Path(), "error", err)
		fmt.Fprintf(os.Stderr, "warning: %v (starting with an empty department registry)\n", err)
	} else if err := depts.Restore(snaps); err != nil {
		return nil, err
	}
	if snaps, err := unitStore.Load(); err != nil {
		logger.Warn("unit file unreadable, starting empty", "path", unitStore.Path(), "error", err)
		fmt.Fprintf(os.Stderr, "warning: %v (starting with an empty unit registry)\n", err)
	} else if err := units.Restore(snaps); err != nil {
		return nil, err
	}

	coord := org.NewCoordinator(org.Config{
		Departments: depts,
		Units:       units,
		Logger:      logger,
	})

	return &App{
		Config:      cfg,
		Logger:      logger,
		Coordinator: coord,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	_ = a.Logger.Close()
}
