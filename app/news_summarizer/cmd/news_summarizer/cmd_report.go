package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/engine"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/htmlreport"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

var reportFlags struct {
	limit int
	out   string
	html  string
}

var reportCmd = &cobra.Command{
	Use:               "report <company>",
	Short:             "Generate a sentiment report for a company",
	Args:              cobra.MinimumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              runReport,
}

func init() {
	f := reportCmd.Flags()
	f.IntVarP(&reportFlags.limit, "limit", "n", 0, fmt.Sprintf("最多分析的文章数 (1-%d)，默认取配置", config.MaxLimit))
	f.StringVarP(&reportFlags.out, "out", "o", "", "将报告文本写入文件")
	f.StringVar(&reportFlags.html, "html", "", "将报告渲染为 HTML 文件")
}

func runReport(cmd *cobra.Command, args []string) error {
	company := strings.TrimSpace(strings.Join(args, " "))
	if company == "" {
		return fmt.Errorf("company name is required")
	}
	limit := reportFlags.limit
	if limit == 0 {
		limit = cfg.Limit
	}
	if limit < 1 || limit > config.MaxLimit {
		return fmt.Errorf("--limit must be between 1 and %d, got %d", config.MaxLimit, limit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, cleanup, err := engine.NewFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	defer cleanup()

	report, narration, err := eng.GenerateReport(ctx, company, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Text)
	if narration.Failed {
		fmt.Fprintf(out, "Narration failed: %v\n", narration.Err)
	} else {
		fmt.Fprintf(out, "Narration: %s\n", narration.Handle)
	}
	if report.ID > 0 {
		fmt.Fprintf(out, "Report saved with id %d\n", report.ID)
	}

	if reportFlags.out != "" {
		if err := os.WriteFile(reportFlags.out, []byte(report.Text), 0o644); err != nil {
			return fmt.Errorf("write report file: %w", err)
		}
		logger.Log.Infof("报告已写入 %s", reportFlags.out)
	}
	if reportFlags.html != "" {
		if err := htmlreport.WriteFile(reportFlags.html, report, narration); err != nil {
			return fmt.Errorf("write html report: %w", err)
		}
		logger.Log.Infof("HTML 报告已生成: %s", reportFlags.html)
	}
	return nil
}
