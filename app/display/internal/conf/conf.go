package conf

// Bootstrap 展示服务配置
type Bootstrap struct {
	Server     *Server
	Summarizer *Summarizer
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

// Summarizer 报告引擎配置，引擎本身的配置沿用 news_summarizer 的 YAML 文件
type Summarizer struct {
	Config string `json:"config"`
}
