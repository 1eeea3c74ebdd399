package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
	"github.com/vfg2006/rsa-auditor-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeCooldownPurge = "cooldown-purge"
	CronJobTypeAll           = "all"
)

// CronJob é um job agendado que também pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os jobs que podem ser executados manualmente
type CronJobServices struct {
	CooldownPurge CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := map[string]CronJob{}
	if s.CooldownPurge != nil {
		jobs[CronJobTypeCooldownPurge] = s.CooldownPurge
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logger := log.ForContext(r.Context()).WithField("type", cronType)

		jobs := services.byType()
		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}
		case CronJobTypeCooldownPurge:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrCronJobUnavailable, "Cron job is not configured", map[string]string{"type": cronType})
				return
			}
			job.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrUnknownCronJob, "Unknown cron job. Accepted values: cooldown-purge, all", map[string]string{"type": cronType})
			return
		}

		logger.Info("Cron job disparada manualmente")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job started",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs configuradas
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}
		writeJSON(w, r, http.StatusOK, status)
	}
}
