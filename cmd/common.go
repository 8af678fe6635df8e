package cmd

import (
	"fmt"

	"ota-server/core/config"
	"ota-server/core/database"
	"ota-server/core/storage"
	"ota-server/feature/distribution"
	"ota-server/feature/downloads"

	"go.uber.org/zap"
)

// newArtifactSource builds the configured source. The storage client is only
// created when artifacts are read from a bucket.
func newArtifactSource(cfg *config.Config) (distribution.Source, error) {
	var client storage.Client
	if cfg.Artifacts.Source == distribution.SourceBucket {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	}
	return distribution.NewSource(cfg.Artifacts, client, cfg.Storage.Bucket)
}

// openRecorder connects the download audit. It returns nil when the audit is
// disabled or unreachable, so the server keeps serving without it.
func openRecorder(cfg *config.Config, logg *zap.Logger) distribution.Recorder {
	if !cfg.Database.Enabled {
		return nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Optional database connection failed, download audit disabled", zap.Error(err))
		return nil
	}

	recorder := downloads.NewRecorder(db)
	if err := recorder.Migrate(); err != nil {
		logg.Warn("Download audit disabled", zap.Error(err))
		return nil
	}

	logg.Info("Download audit enabled", zap.String("driver", cfg.Database.Driver))
	return recorder
}
