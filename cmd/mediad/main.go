package main

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"mediafs/pkg/log"
	"mediafs/pkg/media"
	"mediafs/pkg/meta"
	"mediafs/pkg/server"
)

const storageDirPerm = 0750

//go:embed VERSION
var Version string

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		log.SetDebugMode()
	}

	for _, dir := range []string{cfg.StorageDir, cfg.TempDir, filepath.Dir(cfg.DBPath)} {
		if err := os.MkdirAll(dir, storageDirPerm); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create directory")
		}
	}

	store, err := meta.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("Failed to open metadata store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close metadata store")
		}
	}()

	// Seed the reserved structure of the global sandbox.
	svc, err := media.NewService(cfg.StorageDir, cfg.TempDir, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to bind global sandbox")
	}
	if err := svc.EnsureSystemFolders(); err != nil {
		log.Fatal().Err(err).Msg("Failed to create system folders")
	}

	opts := media.Options{ReadOnlyBrowsing: cfg.ReadOnlyBrowsing}
	srv := server.NewMediaServer(cfg.StorageDir, cfg.TempDir, strings.TrimSpace(Version), store, opts)

	if err := srv.Start(cfg.Listen); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}

	os.Exit(0)
}
