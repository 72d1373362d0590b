package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hiring-slate/internal/export"
	"github.com/spigell/hiring-slate/internal/report"
	"github.com/spigell/hiring-slate/internal/scoring"
)

const (
	app = "hiring-slate"
)

type Config struct {
	Input       string          `mapstructure:"input"`
	Output      string          `mapstructure:"output"`
	Weights     scoring.Weights `mapstructure:"weights"`
	Diversity   bool            `mapstructure:"diversity"`
	Top         int             `mapstructure:"top"`
	ExcludeFile string          `mapstructure:"exclude-file"`
	UserAgent   string          `mapstructure:"user-agent"`
	Exclude     *struct {
		Emails []string
	}
	AI *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hiring-slate ranks candidates for a fixed set of roles and picks one hire per role",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("input", "SLATE_INPUT"); err != nil {
		log.Fatalf("binding SLATE_INPUT environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	defaults := scoring.DefaultWeights()
	viper.SetDefault("output", export.DefaultCSVFile)
	viper.SetDefault("weights.experience", defaults.Experience)
	viper.SetDefault("weights.skills", defaults.Skills)
	viper.SetDefault("weights.salary", defaults.Salary)
	viper.SetDefault("diversity", true)
	viper.SetDefault("top", report.DefaultTop)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hiring-slate.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only the run command reads the config.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Everything can come from flags and env, so a missing default config is fine.
	// An explicit or broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
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

func (c *Config) excludedEmails() []string {
	if c.Exclude == nil {
		return nil
	}
	return c.Exclude.Emails
}
