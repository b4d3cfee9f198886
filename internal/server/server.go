package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	billreqdomain "github.com/smallbiznis/tavolo/internal/billrequest/domain"
	"github.com/smallbiznis/tavolo/internal/config"
	coorddomain "github.com/smallbiznis/tavolo/internal/coordinator/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Engine       *gin.Engine
	Log          *zap.Logger
	Coordinator  coorddomain.Service
	BillRequests billreqdomain.Service
}

type Server struct {
	engine         *gin.Engine
	log            *zap.Logger
	coordinatorSvc coorddomain.Service
	billReqSvc     billreqdomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		engine:         p.Engine,
		log:            p.Log.Named("server"),
		coordinatorSvc: p.Coordinator,
		billReqSvc:     p.BillRequests,
	}
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")

	trx := api.Group("/transactions")
	{
		trx.GET("", s.ListTransactions)
		trx.GET("/:id", s.GetTransaction)
		trx.GET("/:id/tax-adjustments", s.ListTaxAdjustments)
		trx.POST("/:id/notes", s.AddNotes)
		trx.POST("/:id/transfer", s.TransferServer)
		trx.POST("/:id/move", s.MoveOrder)
		trx.POST("/:id/refire", s.Refire)
		trx.POST("/:id/remove-taxes", s.RemoveTaxes)
	}

	ops := api.Group("/operations")
	{
		ops.POST("/handover", s.ShiftHandover)
		ops.POST("/combine", s.CombineOrders)
	}

	reqs := api.Group("/bill-requests")
	{
		reqs.POST("/print", s.CreatePrintBillRequest)
		reqs.POST("/print/table", s.CreatePrintBillRequestsForTable)
		reqs.POST("/pay", s.CreatePayEntireBillRequest)
		reqs.GET("/pending", s.ListPendingRequests)
		reqs.POST("/complete", s.CompleteRequest)
		reqs.POST("/cancel", s.CancelRequest)
	}
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {
		s.RegisterAPIRoutes()
	}),
	fx.Invoke(RunHTTP),
)
