package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/fitra/internal"
	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/config"
	"github.com/2beens/fitra/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "fitra-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("using max volume: %d", cfg.MaxVolume)

	advisoryAPIKey := ""
	switch strings.ToLower(cfg.AdvisoryProvider) {
	case advisory.ProviderOpenAI:
		advisoryAPIKey = os.Getenv("FITRA_OPENAI_API_KEY")
		if advisoryAPIKey == "" {
			log.Errorf("openai API key not set, use FITRA_OPENAI_API_KEY env var to set it")
		}
	case advisory.ProviderGemini:
		advisoryAPIKey = os.Getenv("FITRA_GEMINI_API_KEY")
		if advisoryAPIKey == "" {
			log.Errorf("gemini API key not set, use FITRA_GEMINI_API_KEY env var to set it")
		}
	}

	redisPassword := os.Getenv("FITRA_REDIS_PASS")
	if redisPassword == "" {
		log.Warnln("redis password not set. use FITRA_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			AdvisoryAPIKey:          advisoryAPIKey,
			RedisPassword:           redisPassword,
			PostgresPassword:        os.Getenv("FITRA_POSTGRES_PASS"),
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	if err := server.GracefulShutdown(); err != nil {
		log.Errorf("graceful shutdown: %s", err)
	}
}
