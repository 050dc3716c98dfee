package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/talentscout/hiring-assistant/internal/interview"
)

const (
	app = "talentscout"

	geminiKeyEnv     = "GEMINI_API_KEY"
	geminiKeyFileEnv = "GEMINI_API_KEY_FILE"
)

type Config struct {
	Interview *InterviewConfig `mapstructure:"interview"`
	AI        *AIConfig        `mapstructure:"ai"`
	Store     *StoreConfig     `mapstructure:"store"`
}

type InterviewConfig struct {
	ExitKeywords []string `mapstructure:"exit-keywords"`
	QuestionsMin int      `mapstructure:"questions-min"`
	QuestionsMax int      `mapstructure:"questions-max"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type StoreConfig struct {
	Path      string    `mapstructure:"path"`
	Anonymize bool      `mapstructure:"anonymize"`
	S3        *S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentscout is a hiring assistant cli that interviews candidates and generates screening questions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Optional .env in the working directory, matching local dev setups.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env file: %v", err)
	}

	if err := viper.BindEnv("ai.gemini.api-key-file", geminiKeyFileEnv); err != nil {
		log.Fatalf("binding %s environment variable: %v", geminiKeyFileEnv, err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("interview.exit-keywords", interview.DefaultExitKeywords)
	viper.SetDefault("interview.questions-min", 3)
	viper.SetDefault("interview.questions-max", 5)
	viper.SetDefault("store.anonymize", true)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// We can't proceed if an explicit config file parsed with error.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The config file is optional: defaults and flags cover a local run.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// getConfig decodes the merged viper settings into the typed config. The
// weakly typed decoder accepts a comma-separated string for the exit
// keywords alongside a plain YAML list.
func getConfig() (*Config, error) {
	var config *Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	return config, nil
}
