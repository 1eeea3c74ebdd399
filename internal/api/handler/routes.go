package handler

import (
	"net/http"

	"github.com/vfg2006/rsa-auditor-api/internal/api/handler/router"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Audits(service optimizing.Optimizer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/audits",
			Method:  http.MethodPost,
			Handler: AuditBatch(service),
		},
		{
			Path:    "/v1/remediations",
			Method:  http.MethodPost,
			Handler: Remediate(service),
		},
	}
}

func Verticals(registry *verticals.Registry, catalog *extracting.Catalog) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/verticals",
			Method:  http.MethodGet,
			Handler: ListVerticals(registry),
		},
		{
			Path:    "/v1/verticals/:name",
			Method:  http.MethodGet,
			Handler: GetVertical(registry, catalog),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
