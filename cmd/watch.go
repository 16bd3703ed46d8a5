package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/schedule"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the search and scoring pipeline on a cron schedule",
	Run: func(cmd *cobra.Command, _ []string) {
		watch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("schedule", "s", "", "cron expression overriding the schedule config key")

	viper.BindPFlag("schedule", watchCmd.Flags().Lookup("schedule"))
}

func watch(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobradar watcher", zap.String("version", version))

	validateConfig(config, logger)

	spec := viper.GetString("schedule")
	if spec == "" {
		spec = config.Schedule
	}
	if spec == "" {
		logger.Fatal("a cron expression is required under the schedule config key or the --schedule flag")
	}

	// Watch runs unattended, so every tick behaves like `run --auto-approve`.
	runner := schedule.New(spec, func() {
		if err := executeOnce(ctx, config, logger, true, false); err != nil {
			logger.Error("scheduled run failed", zap.Error(err))
		}
	}, logger)

	if err := runner.Start(); err != nil {
		logger.Fatal("starting the schedule", zap.Error(err))
	}

	<-ctx.Done()

	logger.Info("exiting", zap.String("reason", "got shutdown signal"))
	runner.Stop()
}
