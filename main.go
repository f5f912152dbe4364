package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/learnity/learnity-backend/api"
	"github.com/learnity/learnity-backend/config"
	"github.com/learnity/learnity-backend/database"
	"github.com/learnity/learnity-backend/services"
	"github.com/learnity/learnity-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(cfg, "DB_HOST", "localhost"),
		config.GetString(cfg, "DB_USER", "postgres"),
		config.GetString(cfg, "DB_PASSWORD", ""),
		config.GetString(cfg, "DB_NAME", "learnity"),
		config.GetString(cfg, "DB_PORT", "5432"),
		config.GetString(cfg, "DB_SSLMODE", "disable"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	blobStore, err := newBlobStore(cfg)
	if err != nil {
		fmt.Printf("Error initializing blob store: %v\n", err)
		os.Exit(1)
	}
	attachments := services.NewAttachmentManager(blobStore)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, attachments)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newBlobStore builds the configured attachment backend: local filesystem by
// default, S3-compatible when STORAGE_BACKEND=s3.
func newBlobStore(cfg map[string]string) (storage.Store, error) {
	switch backend := config.GetString(cfg, config.KeyStorageBackend, "fs"); backend {
	case "fs":
		return storage.NewFSStore(config.GetString(cfg, config.KeyUploadDir, "uploads"))
	case "s3":
		return storage.NewS3Store(context.Background(), storage.S3Config{
			Region:          config.GetString(cfg, config.KeyS3Region, ""),
			Bucket:          config.GetString(cfg, config.KeyS3Bucket, ""),
			AccessKeyID:     config.GetString(cfg, config.KeyS3AccessKey, ""),
			SecretAccessKey: config.GetString(cfg, config.KeyS3SecretKey, ""),
			Endpoint:        config.GetString(cfg, config.KeyS3Endpoint, ""),
			UsePathStyle:    config.GetBool(cfg, "S3_USE_PATH_STYLE", false),
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
