package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"rezdyLink/internal/config"
	"rezdyLink/internal/modules/bookings/application/port"
	"rezdyLink/internal/platform/broker"
	"rezdyLink/internal/platform/stream"
	"rezdyLink/internal/plugin"
	"rezdyLink/internal/shared/logging"
	"rezdyLink/internal/transport"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	hub := stream.NewHub()
	publisher := broker.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if publisher != nil {
		defer publisher.Close()
		slog.Info("kafka publisher enabled", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}

	connector := plugin.New(plugin.Config{
		Endpoint:  cfg.Rezdy.Endpoint,
		KeySecret: cfg.Keys.Secret,
		Timeout:   cfg.Rezdy.Timeout,
		Events:    plugin.NewEventFanout(eventSinks(publisher, hub)...),
	})

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	transport.NewHandler(connector, hub).Register(e)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	e.Close()
}

func eventSinks(publisher *broker.Publisher, hub *stream.Hub) []port.EventSink {
	sinks := make([]port.EventSink, 0, 2)
	if publisher != nil {
		sinks = append(sinks, publisher)
	}
	if hub != nil {
		sinks = append(sinks, hub)
	}
	return sinks
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
