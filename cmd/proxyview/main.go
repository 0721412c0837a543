// Package main is the entry point of the control shape preview viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/internal/config"
	"github.com/Faultbox/controlshape/internal/logger"
	"github.com/Faultbox/controlshape/internal/proxy"
	"github.com/Faultbox/controlshape/internal/registry"
	"github.com/Faultbox/controlshape/internal/scene"
	"github.com/Faultbox/controlshape/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== controlshape viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	reg := registry.New(logger.Named("registry"))
	if err := registry.Initialize(reg); err != nil {
		return fmt.Errorf("registering shapes: %w", err)
	}
	defer registry.Uninitialize(reg)

	sc, err := scene.Load(cfg.Scene.Path)
	if err != nil {
		return err
	}
	lc := cfg.Viewer.LeadColor
	entries, err := sc.Build(reg, proxy.RGB(lc[0], lc[1], lc[2]), logger.Named("shape"))
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	v, err := viewer.New(cfg, sc, cfg.Scene.Path, entries)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
