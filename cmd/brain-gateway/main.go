package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	var (
		listenAddr = flag.String("listen", ":8000", "Server listen address")
		configFile = flag.String("config", "config/gateway.yaml", "Path to YAML configuration file")
		envFile    = flag.String("env-file", ".env", "Path to .env file (optional)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := NewLogger(os.Stdout)

	if err := loadEnvFile(*envFile, logger); err != nil {
		log.Fatalf("Error loading environment file: %v", err)
	}

	config, err := loadGatewayConfig(*configFile, logger)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	serverCfg := &ServerConfig{
		ListenAddr: *listenAddr,
		Verbose:    *verbose,
	}

	detector := buildDetector(logger)

	logger.InfoMsg("Initializing brain gateway...")
	server := NewGatewayServer(config, serverCfg, detector, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-stop:
		logger.InfoMsg(fmt.Sprintf("Received signal: %v", sig))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server shutdown error: %v", err)
		}

		logger.InfoMsg("Server stopped gracefully")
	}
}

// loadGatewayConfig reads the YAML config, falling back to the open default
// when the file does not exist.
func loadGatewayConfig(path string, logger *Logger) (*GatewayConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.InfoMsg(fmt.Sprintf("Config file not found at %s, using defaults", path))
		return DefaultConfig(), nil
	}
	logger.InfoMsg(fmt.Sprintf("Loading configuration from %s", path))
	return LoadConfig(path)
}

// buildDetector wires the Google Vision detector when an API key is set.
// Without one the gateway still runs, with OCR disabled.
func buildDetector(logger *Logger) TextDetector {
	apiKey := os.Getenv("GOOGLE_VISION_API_KEY")
	if apiKey == "" {
		logger.WarnMsg("GOOGLE_VISION_API_KEY not set, OCR endpoint will not work")
		return nil
	}

	detector, err := NewVisionDetector(context.Background(), apiKey)
	if err != nil {
		logger.Error(LogEntry{Message: "failed to initialize Google Vision client", Error: err.Error()})
		return nil
	}
	logger.InfoMsg("Google Vision client initialized")
	return detector
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile(path string, logger *Logger) error {
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			logger.InfoMsg(fmt.Sprintf(".env file not found at %s, using system environment variables", path))
			return nil
		}
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	logger.InfoMsg(fmt.Sprintf("Loaded environment variables from %s", path))
	return nil
}
