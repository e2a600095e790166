package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/naka-gawa/github-profile/internal/config"
	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/usecase"
	"github.com/naka-gawa/github-profile/internal/view"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders a GitHub user's profile statistics as HTML or JSON",
	Long: `Fetches the profile, repositories and authored pull requests of a GitHub user
and writes the resulting page. The page is written even when a later request
fails, with whatever was rendered up to that point.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, cfgErr := config.LoadConfig()
		logger := newLogger(cmd, cfg, true)
		if cfgErr != nil {
			logger.Debugf("No .env loaded: %v", cfgErr)
		}

		user, _ := cmd.Flags().GetString("user")
		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		if format != "html" && format != "json" {
			fmt.Fprintf(os.Stderr, "Invalid --format %q. Please use html or json.\n", format)
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubAPIURL, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		var opts []usecase.Option
		var bar *pb.ProgressBar
		if verbose, _ := cmd.InheritedFlags().GetBool("verbose"); !verbose {
			bar = pb.New(len(usecase.Stages)).SetTemplate(pb.Simple).SetWriter(os.Stderr).Start()
			opts = append(opts, usecase.WithObserver(func(stage usecase.Stage) {
				bar.Set("suffix", " "+string(stage))
				bar.Increment()
			}))
		}
		pipeline := usecase.NewPipeline(githubGateway, logger, opts...)

		page := view.NewPage()
		runErr := pipeline.Run(ctx, user, page)
		if bar != nil {
			bar.Finish()
		}

		if err := writePage(out, format, page.Snapshot(), cfg.ChartJSURL); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write page: %v\n", err)
			os.Exit(1)
		}
		if runErr != nil {
			if msg := domain.Notification(runErr); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			} else {
				fmt.Fprintf(os.Stderr, "Failed to render stats: %v\n", runErr)
			}
			os.Exit(1)
		}
	},
}

// writePage writes the snapshot to path, or to standard output when path is "-".
func writePage(path, format string, s view.Snapshot, chartJSURL string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if format == "json" {
		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal page to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonData))
		return err
	}
	return view.RenderHTML(w, s, view.HTMLOptions{ChartJSURL: chartJSURL})
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("user", "u", "", "Target GitHub user name")
	renderCmd.Flags().StringP("out", "o", "-", "Output file, - for standard output")
	renderCmd.Flags().StringP("format", "f", "html", "Output format: html or json")
}
