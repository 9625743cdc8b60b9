// Package main точка входа CLI tamilnews.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"tamilnews/internal/app"
	"tamilnews/internal/config"
	"tamilnews/internal/display"
	"tamilnews/internal/domain"
	"tamilnews/internal/logger"
	"tamilnews/pkg/browser"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(browser.Open).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli хранит общее состояние команд после загрузки конфигурации.
type cli struct {
	configPath string
	envFile    string
	cfg        *config.Config
	log        *slog.Logger
	open       func(url string) error
}

// newRootCmd создает корневую команду. open подменяется в тестах.
func newRootCmd(open func(url string) error) *cobra.Command {
	c := &cli{open: open}
	rootCmd := &cobra.Command{
		Use:          "tamilnews",
		Short:        "Tamil Google News with publisher logos and images",
		Long:         "tamilnews fetches the Tamil Google News RSS feed, detects publishers and images, and shows the result in the terminal or over HTTP.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	rootCmd.SetVersionTemplate("tamilnews version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "config.json", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "Path to .env file with TAMILNEWS_* overrides")

	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newOpenCmd())
	rootCmd.AddCommand(c.newServeCmd())
	return rootCmd
}

func (c *cli) setup() error {
	if err := config.LoadEnvFile(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("could not setup logger: %w", err)
	}
	slog.SetDefault(log)
	c.cfg = cfg
	c.log = log
	return nil
}

// loadArticles загружает ленту один раз. Ошибка загрузки уже залогирована
// контроллером и приводит к пустому списку.
func (c *cli) loadArticles(ctx context.Context) ([]domain.Article, error) {
	controller, err := app.NewController(c.cfg, c.log)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeoutDuration())
	defer cancel()
	_ = controller.Refresh(ctx)
	return controller.Articles(), nil
}

func (c *cli) newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the feed once and print the articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("invalid limit %d: must not be negative", limit)
			}
			articles, err := c.loadArticles(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(articles) > limit {
				articles = articles[:limit]
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter(0).FormatFeed(articles))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of articles to print (0 prints all)")
	return cmd
}

func (c *cli) newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <index>",
		Short: "Open the article with the given list index in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index <= 0 {
				return fmt.Errorf("invalid index %q: must be a positive number", args[0])
			}
			articles, err := c.loadArticles(cmd.Context())
			if err != nil {
				return err
			}
			if index > len(articles) {
				return fmt.Errorf("index %d out of range: %d articles available", index, len(articles))
			}
			link := articles[index-1].Link
			if link == "" {
				return fmt.Errorf("article %d has no link", index)
			}
			if err := c.open(link); err != nil {
				return fmt.Errorf("could not open browser: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", link)
			return nil
		},
	}
}

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the news list over HTTP and refresh it periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), c.cfg, c.log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
