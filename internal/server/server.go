package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	auditservice "github.com/ledgerline/taxara/internal/audit/service"
	"github.com/ledgerline/taxara/internal/config"
	gstservice "github.com/ledgerline/taxara/internal/gst/service"
	invoicedomain "github.com/ledgerline/taxara/internal/invoice/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServerParams struct {
	fx.In

	Log        *zap.Logger
	Config     config.Config
	Engine     *gin.Engine
	Calculator *gstservice.Calculator
	InvoiceSvc invoicedomain.Service
	AuditSvc   *auditservice.Service
	Metrics    *Metrics
}

type Server struct {
	log        *zap.Logger
	cfg        config.Config
	engine     *gin.Engine
	calc       *gstservice.Calculator
	invoiceSvc invoicedomain.Service
	auditSvc   *auditservice.Service
	metrics    *Metrics
}

func NewServer(p ServerParams) *Server {
	return &Server{
		log:        p.Log,
		cfg:        p.Config,
		engine:     p.Engine,
		calc:       p.Calculator,
		invoiceSvc: p.InvoiceSvc,
		auditSvc:   p.AuditSvc,
		metrics:    p.Metrics,
	}
}

func NewEngine(cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"service":     cfg.AppName,
			"version":     cfg.AppVersion,
			"environment": cfg.Environment,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) RegisterRoutes() {
	v1 := s.engine.Group("/v1")
	v1.POST("/tax/calculations", s.CalculateTax)
	v1.POST("/invoices", s.IssueInvoice)
	v1.GET("/invoices/:id", s.GetInvoice)
	v1.GET("/invoices/:id/document", s.InvoiceDocument)
	v1.GET("/audit/calculations", s.ListCalculationAudits)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewMetrics),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)
