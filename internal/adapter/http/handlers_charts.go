package adapthttp

import (
	"net/http"

	"weightlog/internal/domain"
)

func unitQuery(r *http.Request) string {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKg
	}
	return unit
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rng, err := domain.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit := unitQuery(r)

	points, err := s.charts.Series(r.Context(), rng, unit, s.now())
	if err != nil {
		if !domain.ValidUnit(unit) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"range": rng,
		"unit":  unit,
		"items": points,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	unit := unitQuery(r)
	summary, err := s.charts.Summary(r.Context(), unit)
	if err != nil {
		if !domain.ValidUnit(unit) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
