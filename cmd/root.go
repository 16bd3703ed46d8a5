package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobradar"
)

type Config struct {
	Query    *QueryConfig   `mapstructure:"query"`
	Profile  *ProfileConfig `mapstructure:"profile"`
	Sources  *SourcesConfig `mapstructure:"sources"`
	Scoring  *ScoringConfig `mapstructure:"scoring"`
	Schedule string         `mapstructure:"schedule"`
	Output   string         `mapstructure:"output"`
}

type QueryConfig struct {
	Keywords   string `mapstructure:"keywords"`
	Location   string `mapstructure:"location"`
	RemoteOnly bool   `mapstructure:"remote-only"`
}

type ProfileConfig struct {
	ResumeFile       string   `mapstructure:"resume-file"`
	Keywords         []string `mapstructure:"keywords"`
	Locations        []string `mapstructure:"locations"`
	RemotePreference string   `mapstructure:"remote-preference"`
	MinimumSalary    int      `mapstructure:"minimum-salary"`
	DealBreakers     []string `mapstructure:"deal-breakers"`
}

type SourcesConfig struct {
	TimeoutSeconds int             `mapstructure:"timeout-seconds"`
	Adzuna         *AdzunaConfig   `mapstructure:"adzuna"`
	Jooble         *KeyedConfig    `mapstructure:"jooble"`
	Remotive       *RemotiveConfig `mapstructure:"remotive"`
	TheMuse        *KeyedConfig    `mapstructure:"themuse"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id"`
	AppIDFile  string `mapstructure:"app-id-file"`
	AppKey     string `mapstructure:"app-key"`
	AppKeyFile string `mapstructure:"app-key-file"`
	Country    string `mapstructure:"country"`
	Disabled   bool   `mapstructure:"disabled"`
}

type KeyedConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Disabled   bool   `mapstructure:"disabled"`
}

type RemotiveConfig struct {
	Disabled bool `mapstructure:"disabled"`
}

type ScoringConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	BatchSize    int    `mapstructure:"batch-size"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobradar is a cli for aggregating job listings from multiple boards and scoring them against your profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobradar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Credentials may live in a local .env file. Missing file is fine.
	_ = godotenv.Load()

	// Config needed only for run and watch commands. If there is no config,
	// we can skip initialization.
	if runCmd.CalledAs() == "" && watchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
