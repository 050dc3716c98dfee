package cmd

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/candidate"
	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic candidate records for testing the store and question sources",
	Run: func(cmd *cobra.Command, _ []string) {
		seed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntP("count", "n", 5, "number of synthetic candidates to generate")
	seedCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before writing records")
	seedCmd.Flags().Bool("offline", false, "skip remote question generation even when a credential is configured")
}

func seed(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	count, err := cmd.Flags().GetInt("count")
	if err != nil || count <= 0 {
		logger.Fatal("count must be a positive number", zap.Error(err))
	}

	if cmd.Flag("yes").Value.String() != "true" {
		confirm := promptui.Prompt{
			Label:     "Write synthetic candidate records to the local store",
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			logger.Info("exiting", zap.String("reason", "seed not confirmed"))
			return
		}
	}

	offline := cmd.Flag("offline").Value.String() == "true"
	source := buildDispatcher(ctx, config, offline, logger)

	anonymize := viper.GetBool("store.anonymize")
	recordStore := store.New(storePath(config), anonymize, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < count; i++ {
		c := candidate.Synthesize(rng)

		questions := make(map[string][]string, len(c.TechStack))
		origins := make(map[string]string, len(c.TechStack))
		for _, tech := range c.TechStack {
			result, err := source.Generate(ctx, tech)
			if err != nil {
				logger.Fatal("generating questions", zap.String("technology", tech), zap.Error(err))
			}
			questions[tech] = result.Questions
			origins[tech] = result.Origin
		}

		path, err := recordStore.Append(c.Record(anonymize, questions, origins))
		if err != nil {
			logger.Fatal("storing synthetic candidate", zap.Error(err))
		}

		logger.Info("synthetic candidate stored",
			zap.String("path", path),
			zap.Strings("tech_stack", c.TechStack),
		)
	}

	logger.Info("seeding complete", zap.Int("count", count))
}
