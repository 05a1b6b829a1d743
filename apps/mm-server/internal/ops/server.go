package ops

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/httputil"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server は運用HTTPサーバーを管理する。
type Server struct {
	engine *gin.Engine
	server *http.Server
	addr   string
}

// New は新しいServerを生成する。gatherer のメトリクスを /metrics で公開する。
func New(cfg *config.Config, h *Handler, gatherer prometheus.Gatherer) *Server {
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.Use(TraceIDMiddleware())
	engine.Use(LoggingMiddleware())
	engine.Use(RecoveryMiddleware())

	SetupRouter(engine, h, gatherer)

	return &Server{
		engine: engine,
		server: &http.Server{
			Addr:              cfg.OpsListenAddr,
			Handler:           engine,
			ReadHeaderTimeout: config.OpsReadHeaderTimeout,
		},
		addr: cfg.OpsListenAddr,
	}
}

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *Handler, gatherer prometheus.Gatherer) {
	engine.GET("/health", h.HandleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/subscribers/:imsi", h.HandleSubscriber)
		v1.GET("/tmsis/:tmsi", h.HandleTMSI)
	}

	engine.NoRoute(httputil.NoRoute())
}

// Handler はルーティング済みの http.Handler を返す。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run はサーバーを起動する。
func (s *Server) Run() error {
	slog.Info("運用サーバー起動", "event_id", "OPS_START", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown はサーバーをシャットダウンする。
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("運用サーバー停止", "event_id", "OPS_STOP")
	return s.server.Shutdown(ctx)
}
