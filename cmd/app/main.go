package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"orderflow/cmd"
	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		root.CreateExpireStaleOrdersCommandHandler(),
		confirmationWindow(configs),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		NotifyWebhookURL:      os.Getenv("NOTIFY_WEBHOOK_URL"),
		OrderConfirmWindowDur: os.Getenv("ORDER_CONFIRM_WINDOW"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusChangeDTO{}); err != nil {
		log.Fatalf("failed to migrate database schema: %v", err)
	}

	return gormDB
}

// confirmationWindow parses ORDER_CONFIRM_WINDOW, defaulting to 30 minutes.
func confirmationWindow(configs cmd.Config) time.Duration {
	if configs.OrderConfirmWindowDur == "" {
		return 30 * time.Minute
	}

	window, err := time.ParseDuration(configs.OrderConfirmWindowDur)
	if err != nil || window <= 0 {
		log.Fatalf("invalid ORDER_CONFIRM_WINDOW %q", configs.OrderConfirmWindowDur)
	}
	return window
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateUpdateShippingCommandHandler(),
		root.CreateUpdatePaymentCommandHandler(),
		root.CreateAddOrderNoteCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetStatusHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
