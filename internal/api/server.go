package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/internal/api/handler"
	"github.com/vfg2006/rsa-auditor-api/internal/api/handler/router"
	"github.com/vfg2006/rsa-auditor-api/internal/config"
	"github.com/vfg2006/rsa-auditor-api/internal/scheduler"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	// cleanup roda no desligamento, depois do servidor HTTP
	cleanup []func() error
}

// Dependencies agrupa os serviços expostos pela API
type Dependencies struct {
	Optimizer     optimizing.Optimizer
	Registry      *verticals.Registry
	Catalog       *extracting.Catalog
	CooldownPurge *scheduler.CooldownPurgeService
	Cleanup       []func() error
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Optimizer == nil {
		return nil, fmt.Errorf("api: optimizer é obrigatório")
	}
	if deps.Registry == nil {
		deps.Registry = verticals.NewRegistry()
	}
	if deps.Catalog == nil {
		deps.Catalog = extracting.MustLoadCatalog()
	}

	cronServices := handler.CronJobServices{}
	if deps.CooldownPurge != nil {
		cronServices.CooldownPurge = deps.CooldownPurge
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Audits(deps.Optimizer)...),
		router.WithRoutes(handler.Verticals(deps.Registry, deps.Catalog)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.App.AllowedOrigins),
		middleware.AuthMiddleware(cfg.App.APIToken),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
		cleanup: deps.Cleanup,
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	for _, fn := range s.cleanup {
		if err := fn(); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso no desligamento")
		}
	}

	return nil
}
