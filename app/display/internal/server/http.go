package server

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Varuni13/news_summarizer/app/display/internal/conf"
	"github.com/Varuni13/news_summarizer/app/display/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	RegisterDisplayHTTPServer(srv, s)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return srv
}

// RegisterDisplayHTTPServer 注册报告接口路由
func RegisterDisplayHTTPServer(srv *http.Server, s *service.DisplayService) {
	r := srv.Route("/")
	r.POST("/v1/reports", generateReportHandler(s))
	r.GET("/v1/reports", listReportsHandler(s))
	r.GET("/v1/reports/{id}", getReportHandler(s))
}

func generateReportHandler(s *service.DisplayService) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in service.GenerateReportReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, "/display.v1.Display/GenerateReport")
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			return s.GenerateReport(c, req.(*service.GenerateReportReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func listReportsHandler(s *service.DisplayService) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in service.ListReportsReq
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, "/display.v1.Display/ListReports")
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			return s.ListReports(c, req.(*service.ListReportsReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func getReportHandler(s *service.DisplayService) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in service.GetReportReq
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, "/display.v1.Display/GetReport")
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			return s.GetReport(c, req.(*service.GetReportReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}
