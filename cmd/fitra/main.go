package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/2beens/fitra/internal/advisory"
	"github.com/2beens/fitra/internal/config"
	"github.com/2beens/fitra/internal/db"
	"github.com/2beens/fitra/internal/logging"
	"github.com/2beens/fitra/internal/training"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	analyzeFile      string
	analyzeComment   string
	analyzeLevel     string
	analyzeGoal      string
	analyzeProvider  string
	analyzeModel     string
	analyzeMaxVolume int64
	analyzeTimeout   time.Duration
	analyzeJSON      bool

	migrateEnv    string
	migrateConfig string
)

var rootCmd = &cobra.Command{
	Use:   "fitra",
	Short: "Training session scoring and feedback",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.LoggerSetupParams{
			LogLevel: logLevel,
		})
	},
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a session file and print the feedback report",
	Long: `Score a training session from a YAML or JSON file and print the report.

The advisory provider API key is read from FITRA_OPENAI_API_KEY or
FITRA_GEMINI_API_KEY, depending on --provider.`,
	RunE: runAnalyze,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the training report table",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "session file (YAML or JSON)")
	analyzeCmd.Flags().StringVarP(&analyzeComment, "comment", "c", "", "trainee comment, overrides the one in the file")
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "beginner | intermediate | advanced")
	analyzeCmd.Flags().StringVar(&analyzeGoal, "goal", "", "bulk | cut | health")
	analyzeCmd.Flags().StringVar(&analyzeProvider, "provider", advisory.ProviderStatic, "advisory provider: openai | gemini | static")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "advisory model, provider default if empty")
	analyzeCmd.Flags().Int64Var(&analyzeMaxVolume, "max-volume", training.DefaultMaxVolume, "volume that scores 100")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 60*time.Second, "advisory call timeout")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the whole report as JSON")
	_ = analyzeCmd.MarkFlagRequired("file")

	migrateCmd.Flags().StringVar(&migrateEnv, "env", "development", "config environment")
	migrateCmd.Flags().StringVar(&migrateConfig, "config", "./config.toml", "path for the TOML config file")

	rootCmd.AddCommand(analyzeCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(analyzeFile)
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}
	req, err := parseSession(data)
	if err != nil {
		return err
	}
	if analyzeComment != "" {
		req.Comment = analyzeComment
	}
	if level := advisory.Level(strings.ToLower(analyzeLevel)); level.IsValid() {
		req.Level = level
	}
	if goal := advisory.Goal(strings.ToLower(analyzeGoal)); goal.IsValid() {
		req.Goal = goal
	}

	ctx := cmd.Context()
	advisor, err := advisory.NewAdvisor(ctx, advisory.NewAdvisorParams{
		Provider:   analyzeProvider,
		APIKey:     apiKeyFor(analyzeProvider),
		Model:      analyzeModel,
		HttpClient: &http.Client{Timeout: analyzeTimeout},
	})
	if err != nil {
		return err
	}

	pipeline, err := training.NewPipeline(training.PipelineParams{
		MaxVolume: analyzeMaxVolume,
		Advisor:   advisor,
	})
	if err != nil {
		return err
	}

	report, err := pipeline.Analyze(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err = fmt.Fprint(out, report.Text)
	return err
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(migrateEnv, migrateConfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBPassword: os.Getenv("FITRA_POSTGRES_PASS"),
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if _, err := dbPool.Exec(ctx, training.Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Infof("training report schema applied to [%s]", cfg.PostgresDBName)
	return nil
}

func apiKeyFor(provider string) string {
	switch strings.ToLower(provider) {
	case advisory.ProviderOpenAI:
		return os.Getenv("FITRA_OPENAI_API_KEY")
	case advisory.ProviderGemini:
		return os.Getenv("FITRA_GEMINI_API_KEY")
	default:
		return ""
	}
}
