package cmd

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kadoinkus/chatbot-platform/config"
	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
	"github.com/Kadoinkus/chatbot-platform/domains/assistant"
	"github.com/Kadoinkus/chatbot-platform/infrastructure/ai"
	"github.com/Kadoinkus/chatbot-platform/infrastructure/store"
	"github.com/Kadoinkus/chatbot-platform/ui/rest"
	"github.com/Kadoinkus/chatbot-platform/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() error {
	var gateway analytics.ISessionGateway
	var writer analytics.ISessionWriter
	var assistantRepo assistant.IAssistantRepository

	switch config.DBDriver {
	case "postgres":
		repo, err := store.NewPostgresRepository(config.DBDSN)
		if err != nil {
			return fmt.Errorf("failed to open postgres store: %w", err)
		}
		gateway, writer, assistantRepo = repo, repo, repo
	case "sqlite3":
		repo, err := store.NewSQLiteRepository(config.DBDSN)
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		gateway, writer, assistantRepo = repo, repo, repo
	default:
		return fmt.Errorf("unknown db driver: %s", config.DBDriver)
	}

	storeName := config.DBDriver
	if config.MockFallbackEnabled {
		gateway = store.NewFallbackGateway(gateway, store.NewMockGateway())
		storeName += "+mock"
	}

	analyzer := ai.NewService(config.OpenAIAPIKey)
	if analyzer == nil {
		logrus.Warn("OpenAI API key not configured, session analysis disabled")
	}

	analyticsService := usecase.NewAnalyticsService(gateway, config.Rates)
	assistantService := usecase.NewAssistantService(assistantRepo)
	enrichmentService := usecase.NewEnrichmentService(writer, analyzer)
	healthService := usecase.NewHealthService(gateway, storeName)

	app := fiber.New(fiber.Config{AppName: "chatbot-platform"})

	rest.InitRestAnalytics(app, analyticsService)
	rest.InitRestAssistant(app, assistantService)
	rest.InitRestSession(app, enrichmentService)
	rest.InitRestHealth(app, healthService)

	logrus.Infof("Starting dashboard API on port %s (store: %s)", config.AppPort, storeName)
	return app.Listen(":" + config.AppPort)
}
