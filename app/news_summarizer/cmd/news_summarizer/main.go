package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

// version 构建时通过 -ldflags 注入
var version = "dev"

var configPath string

// cfg 由 PersistentPreRunE 加载，子命令直接使用
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "news_summarizer",
	Short: "Company news sentiment reports with spoken summaries",
	Long: "news_summarizer fetches recent news about a company, scores each article's sentiment,\n" +
		"compares topic coverage across articles and narrates the final verdict.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "配置文件路径")
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version
}

// loadConfig 加载配置并初始化日志
func loadConfig(_ *cobra.Command, _ []string) error {
	c, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := logger.Init(c.Log.Level, c.Log.File); err != nil {
		return fmt.Errorf("无法初始化日志: %w", err)
	}
	cfg = c
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
