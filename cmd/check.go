package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"ota-server/core/config"
	"ota-server/core/database"
	"ota-server/core/logger"
	"ota-server/feature/distribution"
	"ota-server/feature/downloads"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every served artifact has a backing file",
	Long:  `Opens each backing file through the configured source and reports its size. Exits non-zero when any is missing or unreadable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		source, err := newArtifactSource(cfg)
		if err != nil {
			return err
		}

		svc := distribution.NewService(source, cfg.Artifacts.Catalog(), logg, nil)
		report := svc.Check(cmd.Context())

		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n=== Artifacts (%s) ===\n", report.Source)
			for _, a := range report.Artifacts {
				state := fmt.Sprintf("OK (%d bytes)", a.Size)
				if !a.Present {
					state = "FAIL: " + a.Error
				}
				fmt.Fprintf(out, "%-10s %-20s %-25s %s\n", a.Name, a.Route, a.Path, state)
			}
		}

		if cfg.Database.Enabled {
			if err := checkAuditSchema(cfg, logg); err != nil {
				return err
			}
		}

		if missing := report.Missing(); len(missing) > 0 {
			return fmt.Errorf("artifacts not servable: %s", strings.Join(missing, ", "))
		}
		return nil
	},
}

func checkAuditSchema(cfg *config.Config, logg *zap.Logger) error {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}

	missing, err := downloads.NewRecorder(db).MissingColumns()
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		logg.Warn("Downloads table is out of date, it is migrated on server start",
			zap.Strings("missing_columns", missing))
		return nil
	}
	logg.Info("Downloads table schema OK")
	return nil
}

func init() {
	checkCmd.Flags().Bool("json", false, "Print the report as JSON")
	RootCmd.AddCommand(checkCmd)
}
