package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naka-gawa/github-profile/internal/config"
	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/server"
	"github.com/naka-gawa/github-profile/internal/usecase"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the profile statistics page over HTTP",
	Long: `Starts an HTTP server hosting a page with a username form. Submitting the form
renders that user's statistics. A JSON snapshot of the same page is available at
/api/stats?username=NAME.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, cfgErr := config.LoadConfig()
		logger := newLogger(cmd, cfg, false)
		if cfgErr != nil {
			logger.Warnf(".env not found: %v", cfgErr)
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.ServerPort = port
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubAPIURL, logger)
		if err != nil {
			logger.Fatalf("Failed to create GitHub gateway: %v", err)
		}
		srv := server.New(usecase.NewPipeline(githubGateway, logger), logger, cfg.ChartJSURL)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			return srv.Start(":" + cfg.ServerPort)
		})
		eg.Go(func() error {
			<-egCtx.Done()
			logger.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := eg.Wait(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
		logger.Info("Server exited")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Listen port (overrides SERVER_PORT)")
}
