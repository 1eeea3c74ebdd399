package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
)

type verticalSummary struct {
	Name         string  `json:"name"`
	CTRBenchmark float64 `json:"ctr_benchmark"`
	CVRBenchmark float64 `json:"cvr_benchmark"`
}

type verticalDetail struct {
	verticalSummary
	ImperativeVerbs []string      `json:"imperative_verbs"`
	CTAs            []string      `json:"ctas"`
	Signals         []string      `json:"signals"`
	Offers          domain.Offers `json:"offers"`
}

func summarize(rs verticals.RuleSet) verticalSummary {
	return verticalSummary{
		Name:         string(rs.Vertical),
		CTRBenchmark: rs.CTRBenchmark,
		CVRBenchmark: rs.CVRBenchmark,
	}
}

// ListVerticals lista as verticais suportadas com seus benchmarks
func ListVerticals(registry *verticals.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := registry.Verticals()
		out := make([]verticalSummary, 0, len(names))
		for _, name := range names {
			rs, err := registry.Lookup(string(name))
			if err != nil {
				continue
			}
			out = append(out, summarize(rs))
		}
		writeJSON(w, r, http.StatusOK, map[string]any{"verticals": out})
	}
}

// GetVertical detalha a política e o catálogo de ofertas de uma vertical
func GetVertical(registry *verticals.Registry, catalog *extracting.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")

		rs, err := registry.Lookup(name)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownVertical, "Unknown vertical", map[string]any{
				"vertical":  name,
				"supported": registry.Verticals(),
			})
			return
		}

		writeJSON(w, r, http.StatusOK, verticalDetail{
			verticalSummary: summarize(rs),
			ImperativeVerbs: rs.ImperativeVerbs,
			CTAs:            rs.CTAs,
			Signals:         rs.Signals,
			Offers:          catalog.Offers(string(rs.Vertical)),
		})
	}
}
