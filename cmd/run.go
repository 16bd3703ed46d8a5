package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/aggregate"
	"github.com/jobradar/jobradar/internal/ai/gemini"
	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/scoring"
	"github.com/jobradar/jobradar/internal/secrets"
	"github.com/jobradar/jobradar/internal/source"
	"github.com/jobradar/jobradar/internal/source/adzuna"
	"github.com/jobradar/jobradar/internal/source/jooble"
	"github.com/jobradar/jobradar/internal/source/remotive"
	"github.com/jobradar/jobradar/internal/source/themuse"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	// How many scored jobs get a summary log line at the end of a run.
	reportTopN = 10
)

var scorePrompt = promptui.Select{
	Label: "Send these jobs for AI scoring?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search all configured job boards once and score the results",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before AI scoring")
	runCmd.Flags().Bool("skip-scoring", false, "aggregate and deduplicate only, without AI scoring")
	runCmd.Flags().StringP("output", "o", "", "file to write scored results to. Default is a temporary file.")

	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobradar", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	validateConfig(config, logger)

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"
	skipScoring := cmd.Flag("skip-scoring").Value.String() == "true"

	if err := executeOnce(ctx, config, logger, autoApprove, skipScoring); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

// validateConfig enforces the parts of the config every pipeline run needs.
// Failures here are operator errors, not provider hiccups, so they are fatal.
func validateConfig(config *Config, logger *zap.Logger) {
	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Query == nil || strings.TrimSpace(config.Query.Keywords) == "" {
		logger.Fatal("search keywords are required under query.keywords")
	}

	if config.Profile == nil || config.Profile.ResumeFile == "" {
		logger.Fatal("resume file is required under profile.resume-file to score jobs against")
	}
}

// executeOnce runs a single aggregate-and-score pass. It is shared between
// the run command and every tick of the watch command.
func executeOnce(ctx context.Context, config *Config, logger *zap.Logger, autoApprove, skipScoring bool) error {
	adapters, err := buildAdapters(config.Sources, logger)
	if err != nil {
		return fmt.Errorf("building source adapters: %w", err)
	}

	query := jobs.Query{
		Keywords:   config.Query.Keywords,
		Location:   config.Query.Location,
		RemoteOnly: config.Query.RemoteOnly,
	}

	result := aggregate.New(adapters, logger).Aggregate(ctx, query)

	if len(result.Jobs) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return nil
	}

	if skipScoring {
		return report(unscored(result.Jobs), logger)
	}

	if !autoApprove {
		logger.Info("jobs found", zap.Int("count", len(result.Jobs)))

		_, action, err := scorePrompt.Run()
		if err != nil {
			return err
		}

		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return nil
		}
	}

	profile, err := loadProfile(config.Profile)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	service, err := newScoringService(ctx, config.Scoring, logger)
	if err != nil {
		return fmt.Errorf("building scoring service: %w", err)
	}

	return report(service.Score(ctx, result.Jobs, profile), logger)
}

// buildAdapters assembles every enabled source adapter. Adapters whose
// credentials are absent are still registered; they surface as unavailable in
// the aggregation report instead of failing the run.
func buildAdapters(config *SourcesConfig, logger *zap.Logger) ([]source.Adapter, error) {
	if config == nil {
		config = &SourcesConfig{}
	}

	timeout := source.DefaultTimeout
	if config.TimeoutSeconds > 0 {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}

	adapters := make([]source.Adapter, 0, 4)

	if cfg := config.Adzuna; cfg == nil || !cfg.Disabled {
		var appID, appKey, country string
		if cfg != nil {
			country = cfg.Country

			var err error
			appID, err = optionalSecret("adzuna app id", cfg.AppID, cfg.AppIDFile, "ADZUNA_APP_ID")
			if err != nil {
				return nil, err
			}
			appKey, err = optionalSecret("adzuna app key", cfg.AppKey, cfg.AppKeyFile, "ADZUNA_APP_KEY")
			if err != nil {
				return nil, err
			}
		} else {
			appID = strings.TrimSpace(os.Getenv("ADZUNA_APP_ID"))
			appKey = strings.TrimSpace(os.Getenv("ADZUNA_APP_KEY"))
		}

		a := adzuna.New(appID, appKey, country, logger)
		a.HTTPClient = &http.Client{Timeout: timeout}
		adapters = append(adapters, a)
	}

	if cfg := config.Jooble; cfg == nil || !cfg.Disabled {
		key, err := keyedSecret("jooble api key", cfg, "JOOBLE_API_KEY")
		if err != nil {
			return nil, err
		}

		a := jooble.New(key, logger)
		a.HTTPClient = &http.Client{Timeout: timeout}
		adapters = append(adapters, a)
	}

	if cfg := config.Remotive; cfg == nil || !cfg.Disabled {
		a := remotive.New(logger)
		a.HTTPClient = &http.Client{Timeout: timeout}
		adapters = append(adapters, a)
	}

	if cfg := config.TheMuse; cfg == nil || !cfg.Disabled {
		key, err := keyedSecret("themuse api key", cfg, "THEMUSE_API_KEY")
		if err != nil {
			return nil, err
		}

		a := themuse.New(key, logger)
		a.HTTPClient = &http.Client{Timeout: timeout}
		adapters = append(adapters, a)
	}

	return adapters, nil
}

// optionalSecret resolves a credential that an adapter can live without. An
// empty result means "not configured"; a resolution failure (for example an
// unreadable file) is still an error.
func optionalSecret(name, value, file, env string) (string, error) {
	src := secrets.Source{Name: name, Value: value, File: file, Env: env}
	if !secrets.Configured(src) {
		return "", nil
	}

	return secrets.Load(src)
}

func keyedSecret(name string, cfg *KeyedConfig, env string) (string, error) {
	if cfg == nil {
		return optionalSecret(name, "", "", env)
	}
	return optionalSecret(name, cfg.APIKey, cfg.APIKeyFile, env)
}

func loadProfile(config *ProfileConfig) (jobs.Profile, error) {
	resume, err := secrets.Load(secrets.Source{
		Name: "resume",
		File: config.ResumeFile,
	})
	if err != nil {
		return jobs.Profile{}, err
	}

	return jobs.Profile{
		Resume:           resume,
		Keywords:         config.Keywords,
		Locations:        config.Locations,
		RemotePreference: jobs.ParseRemotePreference(config.RemotePreference),
		MinimumSalary:    config.MinimumSalary,
		DealBreakers:     config.DealBreakers,
	}, nil
}

func newScoringService(ctx context.Context, config *ScoringConfig, logger *zap.Logger) (*scoring.Service, error) {
	if config == nil {
		config = &ScoringConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.APIKey,
		File:  config.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set scoring.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Model)
	if err != nil {
		return nil, err
	}

	return scoring.New(generator, config.BatchSize, config.MaxLogLength, logger), nil
}

// report logs the best matches and dumps the full scored list to a file.
func report(scored []jobs.ScoredJob, logger *zap.Logger) error {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	top := scored
	if len(top) > reportTopN {
		top = top[:reportTopN]
	}

	for _, s := range top {
		logger.Info("match",
			zap.Int("score", s.Score),
			zap.String("title", s.Title),
			zap.String("company", s.Company),
			zap.String("url", s.URL),
		)
	}

	filename := viper.GetString("output")
	if filename == "" {
		filename, err := jobs.DumpToTmpFile(scored)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}

		logger.Info("dumping results to file", zap.String("filename", filename), zap.Int("count", len(scored)))
		return nil
	}

	data, err := json.MarshalIndent(scored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write results to file: %w", err)
	}

	logger.Info("dumping results to file", zap.String("filename", filename), zap.Int("count", len(scored)))
	return nil
}

// unscored wraps aggregated jobs so skip-scoring runs share the report path.
func unscored(list []jobs.Job) []jobs.ScoredJob {
	scored := make([]jobs.ScoredJob, 0, len(list))
	for _, j := range list {
		scored = append(scored, jobs.ScoredJob{Job: j})
	}

	return scored
}
