package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Archit728/Content-Moderation-SaaS/controllers"
	"github.com/Archit728/Content-Moderation-SaaS/database"
	"github.com/Archit728/Content-Moderation-SaaS/models"
	"github.com/Archit728/Content-Moderation-SaaS/routes"
	"github.com/Archit728/Content-Moderation-SaaS/services"
	"github.com/Archit728/Content-Moderation-SaaS/services/classifier"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	database.Connect()
	database.DB.AutoMigrate(
		&models.User{},
		&models.Threshold{},
		&models.ModerationLog{},
		&models.BatchJob{},
	)

	cls := buildClassifier(logger)
	defer cls.Close()

	store := database.NewStore(database.DB)
	thresholds := services.NewThresholdService(store)
	moderation := services.NewModerationService(store, cls, thresholds, logger)
	batch := services.NewBatchService(store, cls, thresholds, batchWorkers(), logger)

	r := gin.Default()
	routes.UserRoutes(r)
	routes.ThresholdRoutes(r, controllers.NewThresholdController(thresholds))
	routes.ModerationRoutes(r, controllers.NewModerationController(moderation, batch))

	r.Run()
}

// buildClassifier picks the scoring backend from the environment. With no
// provider configured the deterministic mock keeps local development working
// without a model endpoint.
func buildClassifier(logger *slog.Logger) classifier.Classifier {
	switch os.Getenv("CLASSIFIER_PROVIDER") {
	case "openai":
		logger.Info("using OpenAI moderation classifier")
		return classifier.NewOpenAIClassifier(os.Getenv("OPENAI_API_KEY"))
	case "http":
		endpoint := os.Getenv("CLASSIFIER_URL")
		if endpoint == "" {
			logger.Error("CLASSIFIER_PROVIDER=http requires CLASSIFIER_URL")
			os.Exit(1)
		}
		logger.Info("using HTTP classifier", "endpoint", endpoint)
		return classifier.NewHTTPClassifier(endpoint, os.Getenv("CLASSIFIER_API_KEY"), classifierTimeout(), services.Labels)
	default:
		logger.Info("no classifier configured, using deterministic mock scores")
		return classifier.NewMock(services.Labels)
	}
}

func classifierTimeout() time.Duration {
	if v := os.Getenv("CLASSIFIER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return 0
}

func batchWorkers() int {
	if v := os.Getenv("BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
