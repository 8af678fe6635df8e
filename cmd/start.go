package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ota-server/core/config"
	"ota-server/core/loader"
	"ota-server/core/logger"
	"ota-server/core/server"
	"ota-server/feature/distribution"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the distribution server",
	Long:  `Starts the HTTP server serving the landing route, the application binary and its manifest.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Download audit (Optional)
		recorder := openRecorder(cfg, logg)

		// 4. Artifact source
		source, err := newArtifactSource(cfg)
		if err != nil {
			logg.Fatal("Failed to create artifact source", zap.Error(err))
		}

		// 5. Fiber App with middleware
		app := server.NewApp(logg, os.Stdout)

		// 6. Features
		mgr := loader.NewManager()
		mgr.Register(distribution.NewFeature(source, cfg.Artifacts, logg, recorder))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server. A bind failure is fatal.
		go func() {
			logg.Info("Starting server",
				zap.String("address", cfg.Server.Address()),
				zap.String("source", source.Name()))
			if err := server.Run(app, cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
