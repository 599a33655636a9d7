// Package main provides the resume_matcher CLI: scoring résumés against
// vacancies from files, rescoring stored applications and serving the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "resume_matcher"

var (
	cfgFile string

	// settings carries flag bindings into config.Load.
	settings = viper.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Score résumés against vacancies and rank applications",
		Long: "resume_matcher scores a candidate résumé against a vacancy with a deterministic, " +
			"job-family aware rubric and ranks the applications stored for a vacancy.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = settings.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = settings.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("json"))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, environment and bound flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger used by a command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}
