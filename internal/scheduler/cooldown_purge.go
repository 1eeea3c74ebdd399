package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/internal/config"
)

const purgeTimeout = 2 * time.Minute

// Purger remove as janelas de cooldown já vencidas
type Purger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// CooldownPurgeConfig representa a configuração do agendador de limpeza de cooldowns
type CooldownPurgeConfig struct {
	CronSchedule string
	Backend      string
	Enabled      bool
}

// CooldownPurgeService agenda a limpeza do ledger de cooldown
type CooldownPurgeService struct {
	scheduler *gocron.Scheduler
	config    CooldownPurgeConfig
	purger    Purger
	clock     func() time.Time

	mu                 sync.Mutex
	running            bool
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastDeleted        int64
	lastError          string
}

// NewCooldownPurgeService cria o serviço; purger nil deixa a limpeza desabilitada
func NewCooldownPurgeService(purger Purger, appConfig *config.Config) *CooldownPurgeService {
	purgeConfig := CooldownPurgeConfig{
		CronSchedule: appConfig.Cooldown.PurgeCron,
		Backend:      appConfig.Cooldown.Backend,
		Enabled:      appConfig.Cooldown.PurgeEnabled && purger != nil,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": purgeConfig.CronSchedule,
		"backend":       purgeConfig.Backend,
		"enabled":       purgeConfig.Enabled,
	}).Info("Configuração do agendador de limpeza de cooldowns carregada")

	return &CooldownPurgeService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    purgeConfig,
		purger:    purger,
		clock:     time.Now,
	}
}

// Start inicia o agendador
func (s *CooldownPurgeService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de cooldowns desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de cooldowns")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.purge(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de cooldowns: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de cooldowns")
		s.scheduler.Stop()
	}()

	return nil
}

// purge executa uma limpeza; execuções concorrentes são ignoradas
func (s *CooldownPurgeService) purge(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Limpeza de cooldowns já em andamento, ignorando")
		return
	}
	s.running = true
	startedAt := s.clock()
	s.lastRunStartedAt = startedAt
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), purgeTimeout)
	defer cancel()

	deleted, err := s.purger.DeleteExpired(ctx, startedAt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.lastRunCompletedAt = s.clock()
	s.lastDeleted = deleted
	s.lastError = ""

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao remover cooldowns expirados")
		return
	}

	logrus.WithFields(logrus.Fields{
		"deleted":  deleted,
		"duration": s.lastRunCompletedAt.Sub(startedAt).String(),
	}).Info("Limpeza de cooldowns concluída")
}

// TriggerManualSync inicia manualmente uma limpeza de cooldowns
func (s *CooldownPurgeService) TriggerManualSync() {
	if s.purger == nil {
		logrus.Info("Limpeza de cooldowns sem backend configurado, ignorando solicitação manual")
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Limpeza de cooldowns já em andamento, ignorando solicitação manual")
		return
	}
	s.mu.Unlock()

	logrus.Info("Iniciando limpeza manual de cooldowns")
	go s.purge(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *CooldownPurgeService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"backend":               s.config.Backend,
		"running":               s.running,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_deleted":          s.lastDeleted,
		"last_error":            s.lastError,
	}
}
