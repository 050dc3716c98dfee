package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/ai/fallback"
	"github.com/talentscout/hiring-assistant/internal/ai/gemini"
	"github.com/talentscout/hiring-assistant/internal/candidate"
	"github.com/talentscout/hiring-assistant/internal/interview"
	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/secrets"
	"github.com/talentscout/hiring-assistant/internal/store"
)

const (
	PromptRetrySave = "Retry save"
	PromptDiscard   = "Discard"
)

var savePrompt = promptui.Select{
	Label: "Saving the candidate record failed. What now?",
	Items: []string{PromptRetrySave, PromptDiscard},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive candidate interview",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("data-dir", "", "directory for stored candidate records (default data/candidates)")
	runCmd.Flags().Bool("no-anonymize", false, "store raw name/email instead of a derived id")
	runCmd.Flags().Bool("offline", false, "skip remote question generation even when a credential is configured")

	viper.BindPFlag("store.path", runCmd.Flags().Lookup("data-dir"))
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

	logger.Info("starting talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	offline := cmd.Flag("offline").Value.String() == "true"
	source := buildDispatcher(ctx, config, offline, logger)

	anonymize := viper.GetBool("store.anonymize")
	if cmd.Flag("no-anonymize").Value.String() == "true" {
		anonymize = false
	}

	recordStore := store.New(storePath(config), anonymize, logger)

	uploader, err := buildUploader(ctx, config, logger)
	if err != nil {
		logger.Warn("s3 upload disabled", zap.Error(err))
	}

	session := interview.New(source, interviewConfig(config), logger)

	fmt.Println(session.Greeting())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		reply, err := session.Turn(ctx, scanner.Text())
		if err != nil {
			logger.Fatal("processing turn", zap.Error(err))
		}

		fmt.Println(reply.Text)

		if reply.Done {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Fatal("reading input", zap.Error(err))
	}

	finalize(ctx, session, recordStore, uploader, anonymize, logger)
}

// finalize persists the finished record. An incomplete record is discarded
// silently; a storage failure keeps the in-memory record and offers a retry.
func finalize(ctx context.Context, session *interview.Session, recordStore *store.Store, uploader *store.Uploader, anonymize bool, logger *zap.Logger) {
	rec := session.Record(anonymize)
	if rec == nil {
		logger.Info("conversation ended without a complete profile, nothing stored")
		return
	}

	for {
		path, err := recordStore.Append(rec)
		if err == nil {
			logger.Info("interview complete", zap.String("record", path))
			upload(ctx, uploader, rec, logger)
			return
		}

		logger.Warn("saving candidate record", zap.Error(err))

		_, action, promptErr := savePrompt.Run()
		if promptErr != nil || action == PromptDiscard {
			logger.Info("discarding candidate record", zap.String("record_id", rec.ID))
			return
		}
	}
}

func upload(ctx context.Context, uploader *store.Uploader, rec *candidate.Record, logger *zap.Logger) {
	if uploader == nil {
		return
	}
	if err := uploader.Upload(ctx, rec); err != nil {
		logger.Warn("uploading candidate record", zap.Error(err))
	}
}

// buildDispatcher wires the question sources. The remote variant is attached
// only when a credential resolves and offline mode is not requested; the
// fallback bank is always present.
func buildDispatcher(ctx context.Context, config *Config, offline bool, log *zap.Logger) *ai.Dispatcher {
	minQuestions, maxQuestions := questionBounds(config)

	offlineSource := fallback.New(minQuestions, maxQuestions)

	if offline {
		log.Info("remote generation disabled", zap.String("reason", "offline flag is set"))
		return ai.NewDispatcher(nil, offlineSource, log)
	}

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		log.Info("remote generation disabled, using the static question bank",
			zap.Error(err),
			zap.String("hint", fmt.Sprintf("set %s or ai.gemini.api-key-file in the configuration file", geminiKeyEnv)),
		)
		return ai.NewDispatcher(nil, offlineSource, log)
	}

	model := ""
	maxLogLength := 0
	if config.AI != nil && config.AI.Gemini != nil {
		model = config.AI.Gemini.Model
		maxLogLength = config.AI.Gemini.MaxLogLength
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, model)
	if err != nil {
		log.Warn("building gemini generator, using the static question bank", zap.Error(err))
		return ai.NewDispatcher(nil, offlineSource, log)
	}

	remoteLogger := logger.WithCommonFields(log, "gemini", generator.Model())
	remote := gemini.NewQuestions(generator, minQuestions, maxQuestions, maxLogLength, remoteLogger)

	return ai.NewDispatcher(remote, offlineSource, log)
}

func resolveAPIKey(config *Config) (string, error) {
	src := secrets.Source{Name: "gemini api key", Env: geminiKeyEnv}
	if config.AI != nil && config.AI.Gemini != nil {
		src.File = config.AI.Gemini.APIKeyFile
		src.Value = config.AI.Gemini.APIKey
	}
	return secrets.Load(src)
}

func buildUploader(ctx context.Context, config *Config, log *zap.Logger) (*store.Uploader, error) {
	if config.Store == nil || config.Store.S3 == nil {
		return nil, nil
	}
	return store.NewUploader(ctx, config.Store.S3.Bucket, config.Store.S3.Region, log)
}

func storePath(config *Config) string {
	if config.Store != nil {
		return config.Store.Path
	}
	return ""
}

func questionBounds(config *Config) (int, int) {
	minQuestions, maxQuestions := 3, 5
	if config.Interview != nil {
		if config.Interview.QuestionsMin > 0 {
			minQuestions = config.Interview.QuestionsMin
		}
		if config.Interview.QuestionsMax > 0 {
			maxQuestions = config.Interview.QuestionsMax
		}
	}
	return minQuestions, maxQuestions
}

func interviewConfig(config *Config) interview.Config {
	cfg := interview.Config{}
	if config.Interview != nil {
		cfg.ExitKeywords = config.Interview.ExitKeywords
	}
	return cfg
}
