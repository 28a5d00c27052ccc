package data

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/engine"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/storage"
)

// Data 展示服务的数据资源：报告存储与报告引擎
type Data struct {
	store  *storage.Storage
	engine *engine.Engine
}

// NewData 按 news_summarizer 配置打开数据库并组装引擎，引擎与报告查询共用同一个连接池
func NewData(cfg *config.Config, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if cfg.DB.Host == "" {
		return nil, nil, fmt.Errorf("db is not configured")
	}

	store, err := storage.NewStorage(cfg.DB)
	if err != nil {
		return nil, nil, err
	}

	eng, engCleanup, err := engine.NewFromConfig(context.Background(), cfg, engine.WithStore(store))
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		engCleanup()
		store.Close()
	}
	return &Data{store: store, engine: eng}, cleanup, nil
}
