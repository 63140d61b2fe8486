package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/analysis"
	"github.com/spigell/skillgap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address (default from config, :8080)")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	var advisor ai.Advisor
	if config.AI.Enabled {
		advisor, err = newAdvisor(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("serving without AI recommendations", zap.Error(err))
			advisor = nil
		}
	}

	extractor := config.extractor()
	analyzer := analysis.New(extractor, config.scoringOptions(), logger)

	logger.Info("starting the skillgap server", zap.String("version", version), zap.Bool("ai", advisor != nil))

	if err := server.New(analyzer, extractor, advisor, logger).Run(ctx, config.Server.Listen); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
