package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultCompanies 候选公司列表
var DefaultCompanies = []string{
	"Apple", "Amazon", "Tesla", "Microsoft", "Google",
	"Facebook (Meta)", "Netflix", "Samsung", "IBM",
}

const (
	DefaultLimit = 5
	MaxLimit     = 20
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	News        NewsConfig        `yaml:"news"`
	NLP         NLPConfig         `yaml:"nlp"`
	Narration   NarrationConfig   `yaml:"narration"`
	Cache       CacheConfig       `yaml:"cache"`
	DB          DBConfig          `yaml:"db"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Limit       int               `yaml:"limit"`
}

// LLMConfig OpenAI 兼容接口配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// NewsConfig 新闻源配置
type NewsConfig struct {
	Provider string        `yaml:"provider"`
	NewsAPI  NewsAPIConfig `yaml:"newsapi"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
	RSS      RSSConfig     `yaml:"rss"`
}

// NewsAPIConfig newsapi.org 配置
type NewsAPIConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// RSSConfig RSS 源配置，Feeds 中的 %s 会被替换为公司名
type RSSConfig struct {
	Feeds []string `yaml:"feeds"`
	// FetchContent 为 true 时，条目没有描述则抓取原文正文作为摘要
	FetchContent bool `yaml:"fetch_content"`
}

// NLPConfig 文本分析相关配置
type NLPConfig struct {
	// Entities: llm | gemini | gazetteer
	Entities string `yaml:"entities"`
	// Sentiment: vader | llm
	Sentiment string              `yaml:"sentiment"`
	Gazetteer map[string][]string `yaml:"gazetteer"`
}

// NarrationConfig 语音播报配置
type NarrationConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Language   string        `yaml:"language"`
	Translator string        `yaml:"translator"` // llm | gemini | google | none
	TTSURL     string        `yaml:"tts_url"`
	Storage    StorageConfig `yaml:"storage"`
}

// StorageConfig 音频存储配置
type StorageConfig struct {
	// Kind: file | minio
	Kind  string      `yaml:"kind"`
	Path  string      `yaml:"path"`
	MinIO MinIOConfig `yaml:"minio"`
}

// MinIOConfig 对象存储配置
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// CacheConfig Redis 缓存配置，Addr 为空时不启用
type CacheConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      int    `yaml:"ttl"`
}

// DBConfig 数据库相关配置，Host 为空时不持久化
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN 返回 lib/pq 连接串
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// envOverrides 环境变量优先于配置文件中的密钥
var envOverrides = []struct {
	key string
	dst func(*Config) *string
}{
	{"NEWSAPI_API_KEY", func(c *Config) *string { return &c.News.NewsAPI.APIKey }},
	{"TAVILY_API_KEY", func(c *Config) *string { return &c.News.Tavily.APIKey }},
	{"LLM_API_KEY", func(c *Config) *string { return &c.LLM.APIKey }},
	{"GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"DB_PASSWORD", func(c *Config) *string { return &c.DB.Password }},
	{"MINIO_SECRET_KEY", func(c *Config) *string { return &c.Narration.Storage.MinIO.SecretKey }},
}

// LoadConfig 从指定路径加载配置，并读取当前目录下的 .env
func LoadConfig(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config failed: %w", err)
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv 用环境变量覆盖密钥
func (c *Config) ApplyEnv() {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst(c) = v
		}
	}
}

// ApplyDefaults 填充缺省值
func (c *Config) ApplyDefaults() {
	if c.News.Provider == "" {
		c.News.Provider = "newsapi"
	}
	if c.News.NewsAPI.BaseURL == "" {
		c.News.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if len(c.News.RSS.Feeds) == 0 {
		c.News.RSS.Feeds = []string{"https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"}
	}
	if c.NLP.Entities == "" {
		c.NLP.Entities = "gazetteer"
	}
	if c.NLP.Sentiment == "" {
		c.NLP.Sentiment = "vader"
	}
	if c.Narration.Language == "" {
		c.Narration.Language = "hi"
	}
	if c.Narration.Translator == "" {
		c.Narration.Translator = "google"
	}
	if c.Narration.TTSURL == "" {
		c.Narration.TTSURL = "https://translate.google.com/translate_tts"
	}
	if c.Narration.Storage.Kind == "" {
		c.Narration.Storage.Kind = "file"
	}
	if c.Narration.Storage.Path == "" {
		c.Narration.Storage.Path = "summary_hindi.mp3"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 600
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
}

// Validate 检查配置组合是否可用
func (c *Config) Validate() error {
	var errs []string
	switch c.News.Provider {
	case "newsapi":
		if c.News.NewsAPI.APIKey == "" {
			errs = append(errs, "news.newsapi.api_key is required")
		}
	case "tavily":
		if c.News.Tavily.APIKey == "" {
			errs = append(errs, "news.tavily.api_key is required")
		}
	case "searxng":
		if c.News.SearXNG.BaseURL == "" {
			errs = append(errs, "news.searxng.base_url is required")
		}
	case "rss":
	default:
		errs = append(errs, fmt.Sprintf("unknown news provider: %s", c.News.Provider))
	}

	switch c.NLP.Entities {
	case "llm":
		if c.LLM.Model == "" {
			errs = append(errs, "llm.model is required for llm entity extraction")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			errs = append(errs, "gemini.api_key is required for gemini entity extraction")
		}
	case "gazetteer":
	default:
		errs = append(errs, fmt.Sprintf("unknown entity extractor: %s", c.NLP.Entities))
	}

	switch c.NLP.Sentiment {
	case "vader":
	case "llm":
		if c.LLM.Model == "" {
			errs = append(errs, "llm.model is required for llm sentiment")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown sentiment analyzer: %s", c.NLP.Sentiment))
	}

	if c.Narration.Enabled {
		switch c.Narration.Translator {
		case "llm":
			if c.LLM.Model == "" {
				errs = append(errs, "llm.model is required for llm translation")
			}
		case "gemini":
			if c.Gemini.APIKey == "" {
				errs = append(errs, "gemini.api_key is required for gemini translation")
			}
		case "google", "none":
		default:
			errs = append(errs, fmt.Sprintf("unknown translator: %s", c.Narration.Translator))
		}
		switch c.Narration.Storage.Kind {
		case "file":
		case "minio":
			if c.Narration.Storage.MinIO.Endpoint == "" || c.Narration.Storage.MinIO.Bucket == "" {
				errs = append(errs, "narration.storage.minio endpoint and bucket are required")
			}
		default:
			errs = append(errs, fmt.Sprintf("unknown narration storage: %s", c.Narration.Storage.Kind))
		}
	}

	if c.Limit > MaxLimit {
		errs = append(errs, fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}

	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}
