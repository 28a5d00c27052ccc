package server

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Varuni13/news_summarizer/app/display/internal/conf"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	nsLogger "github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

// LoadSummarizerConfig 加载报告引擎配置并初始化引擎日志
func LoadSummarizerConfig(c *conf.Summarizer, logger log.Logger) (*config.Config, error) {
	if c == nil || c.Config == "" {
		return nil, fmt.Errorf("summarizer.config is not set")
	}

	cfg, err := config.LoadConfig(c.Config)
	if err != nil {
		return nil, err
	}

	if err := nsLogger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init summarizer logger: %v", err)
		_ = nsLogger.Init("info", "") // 降级处理
	}
	return cfg, nil
}
