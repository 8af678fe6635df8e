package cmd

import (
	"fmt"

	"ota-server/core/config"
	"ota-server/core/logger"
	"ota-server/core/storage"
	"ota-server/feature/distribution"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the local backing files to the storage bucket",
	Long:  `Reads the binary and manifest from the artifact root and uploads them to the configured bucket, creating it if needed, so the server can run with ARTIFACTS_SOURCE=bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		publisher := distribution.NewPublisher(
			distribution.NewDiskSource(cfg.Artifacts.Root),
			client,
			cfg.Storage.Bucket,
			cfg.Storage.Region,
			logg,
		)

		results, err := publisher.Publish(cmd.Context(), cfg.Artifacts.Catalog())
		if err != nil {
			return err
		}

		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s -> s3://%s/%s (%d bytes)\n", r.Artifact.Name, cfg.Storage.Bucket, r.Key, r.Size)
		}
		logg.Info("Publish completed", zap.Int("artifacts", len(results)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
}
