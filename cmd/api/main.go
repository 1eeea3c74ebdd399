package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/infrastructure/integrator/adsplatform"
	"github.com/vfg2006/rsa-auditor-api/infrastructure/integrator/phrasing"
	"github.com/vfg2006/rsa-auditor-api/infrastructure/repository"
	"github.com/vfg2006/rsa-auditor-api/internal/api"
	"github.com/vfg2006/rsa-auditor-api/internal/config"
	"github.com/vfg2006/rsa-auditor-api/internal/scheduler"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/rewriting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/log"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
)

func main() {
	changeToSourceDir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel, cfg.App.LogFormat)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cooldowns, closeStore, err := repository.NewCooldownStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o ledger de cooldown")
	}

	renderer := templating.NewRenderer()
	catalog := extracting.MustLoadCatalog()

	pipeline := optimizing.NewPipeline(catalog, renderer, newPhraser(ctx, cfg, renderer), cfg.Audit.GenerationTimeout())
	optimizer := optimizing.NewService(pipeline, cooldowns, newExecutor(cfg), optimizing.Options{
		Workers:     cfg.Audit.Workers,
		CooldownTTL: cfg.Cooldown.TTL(),
	})

	cooldownPurgeService := scheduler.NewCooldownPurgeService(cooldowns, cfg)
	if err := cooldownPurgeService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de cooldowns")
	}

	server, err := api.New(cfg, api.Dependencies{
		Optimizer:     optimizer,
		Registry:      verticals.NewRegistry(),
		Catalog:       catalog,
		CooldownPurge: cooldownPurgeService,
		Cleanup:       []func() error{closeStore},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// changeToSourceDir permite achar o .env local quando rodando com go run
func changeToSourceDir() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))
}

// newPhraser devolve nil quando o LLM está desligado ou falha ao iniciar; o gerador usa só os templates
func newPhraser(ctx context.Context, cfg *config.Config, renderer *templating.Renderer) rewriting.Phraser {
	if !cfg.LLM.Enabled {
		logrus.Info("Reescrita por LLM desabilitada, usando apenas templates")
		return nil
	}

	client, err := phrasing.NewClient(ctx, cfg.LLM, renderer)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar cliente de LLM, usando apenas templates")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"model": cfg.LLM.Model,
		"rpm":   cfg.LLM.RPM,
	}).Info("Reescrita por LLM habilitada")
	return client
}

// newExecutor escolhe entre a plataforma real, o sandbox ou nenhum executor
func newExecutor(cfg *config.Config) optimizing.Executor {
	switch {
	case cfg.AdsPlatform.URL != "":
		logrus.WithField("url", cfg.AdsPlatform.URL).Info("Executor da plataforma de anúncios configurado")
		return adsplatform.NewClient(cfg.AdsPlatform)
	case cfg.AdsPlatform.Sandbox:
		logrus.Warn("ADS_PLATFORM_URL vazio, mudanças executadas no sandbox em memória")
		return adsplatform.NewSandbox()
	default:
		logrus.Warn("Nenhum executor configurado, modo execute indisponível")
		return nil
	}
}
