package engine

import (
	"context"
	"fmt"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/llm"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/narration"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news/factory"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/nlp"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/storage"
)

// BuildOption 组装引擎时的可选项
type BuildOption func(*buildOptions)

type buildOptions struct {
	store ReportStore
}

// WithStore 使用调用方已打开的报告存储，不再按 db 配置另建连接，调用方负责关闭
func WithStore(s ReportStore) BuildOption {
	return func(o *buildOptions) {
		o.store = s
	}
}

// NewFromConfig 按配置组装所有协作者，返回的 cleanup 用于释放连接
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...BuildOption) (*Engine, func(), error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Log.Warnf("释放资源失败: %v", err)
			}
		}
	}
	fail := func(err error) (*Engine, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	limiter := llm.NewLimiter(cfg.Concurrency)

	// 大模型客户端按需懒创建
	var openaiClient, geminiClient llm.Completer
	completer := func(kind string) (llm.Completer, error) {
		switch kind {
		case "gemini":
			if geminiClient == nil {
				g, err := llm.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, limiter)
				if err != nil {
					return nil, err
				}
				closers = append(closers, g.Close)
				geminiClient = g
			}
			return geminiClient, nil
		default:
			if openaiClient == nil {
				c, err := llm.NewOpenAI(ctx, cfg.LLM, limiter)
				if err != nil {
					return nil, err
				}
				openaiClient = c
			}
			return openaiClient, nil
		}
	}

	var kv news.KV
	if cfg.Cache.Addr != "" {
		rdb, err := news.NewRedis(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			// 缓存不可用时直接访问新闻源
			logger.Log.Warnf("Redis 不可用，关闭新闻缓存: %v", err)
		} else {
			closers = append(closers, rdb.Close)
			kv = rdb
		}
	}
	fetcher, err := factory.NewFetcher(cfg, kv)
	if err != nil {
		return fail(fmt.Errorf("新闻源初始化失败: %w", err))
	}

	d := Deps{
		Fetcher:  fetcher,
		Language: nlp.Whatlang{},
		Keywords: nlp.NewRake(),
	}

	switch cfg.NLP.Entities {
	case "llm", "gemini":
		c, err := completer(cfg.NLP.Entities)
		if err != nil {
			return fail(err)
		}
		d.Entities = nlp.NewLLMEntities(c)
	default:
		d.Entities = nlp.NewGazetteer(cfg.NLP.Gazetteer)
	}

	switch cfg.NLP.Sentiment {
	case "llm":
		c, err := completer("llm")
		if err != nil {
			return fail(err)
		}
		d.Sentiment = nlp.NewLLMSentiment(c)
	default:
		d.Sentiment = nlp.NewVader()
	}

	if cfg.Narration.Enabled {
		n, err := buildNarrator(ctx, cfg, completer)
		if err != nil {
			return fail(err)
		}
		d.Narrator = n
	}

	switch {
	case o.store != nil:
		d.Store = o.store
	case cfg.DB.Host != "":
		store, err := storage.NewStorage(cfg.DB)
		if err != nil {
			return fail(fmt.Errorf("数据库初始化失败: %w", err))
		}
		closers = append(closers, store.Close)
		d.Store = store
	default:
		logger.Log.Info("未配置数据库，报告不会持久化")
	}

	return New(d), cleanup, nil
}

func buildNarrator(ctx context.Context, cfg *config.Config, completer func(string) (llm.Completer, error)) (*narration.Pipeline, error) {
	var translator narration.Translator
	switch cfg.Narration.Translator {
	case "google":
		translator = narration.NewGoogleTranslator("")
	case "llm", "gemini":
		c, err := completer(cfg.Narration.Translator)
		if err != nil {
			return nil, err
		}
		translator = narration.NewLLMTranslator(c)
	}

	var store narration.Store
	switch cfg.Narration.Storage.Kind {
	case "minio":
		s, err := narration.NewMinIOStore(ctx, cfg.Narration.Storage.MinIO, cfg.Narration.Storage.Path)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		store = narration.NewFileStore(cfg.Narration.Storage.Path)
	}

	return narration.NewPipeline(translator, narration.NewGoogleTTS(cfg.Narration.TTSURL), store, cfg.Narration.Language), nil
}
