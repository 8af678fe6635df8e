package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ota-server/core/config"
	"ota-server/core/database"
	"ota-server/feature/downloads"

	"github.com/spf13/cobra"
)

// downloadsCmd represents the downloads command
var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "Show download counts per artifact",
	Long:  `Aggregates the download audit table. Requires DATABASE_ENABLED=true.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cfg.Database.Enabled {
			return errors.New("download audit is disabled (set DATABASE_ENABLED=true)")
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		counts, err := downloads.NewRecorder(db).Counts(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := json.MarshalIndent(counts, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintln(out, "\n=== Downloads ===")
		if len(counts) == 0 {
			fmt.Fprintln(out, "No downloads recorded")
			return nil
		}
		for _, c := range counts {
			fmt.Fprintf(out, "%-10s %6d downloads %12d bytes  last %s\n",
				c.Artifact, c.Total, c.Bytes, c.Last.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	downloadsCmd.Flags().Bool("json", false, "Print the counts as JSON")
	RootCmd.AddCommand(downloadsCmd)
}
