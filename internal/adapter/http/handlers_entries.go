package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

type entryView struct {
	Index            int          `json:"index"`
	Entry            domain.Entry `json:"entry"`
	DistanceToTarget float64      `json:"distanceToTarget"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	missing, err := s.entries.MissingStickyFields(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"firstRun": len(missing) > 0, "missing": missing})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		rows, err := s.entries.Display(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if r.URL.Query().Get("order") == "asc" {
			for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
		items := make([]entryView, 0, len(rows))
		for _, row := range rows {
			items = append(items, entryView{
				Index:            row.Index,
				Entry:            row.Entry,
				DistanceToTarget: domain.DistanceToTarget(row.Entry),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Weight       formValue `json:"weight"`
			TargetWeight formValue `json:"targetWeight"`
			Height       formValue `json:"height"`
			Age          formValue `json:"age"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.entries.Append(ctx, app.AppendInput{
			Weight:       string(body.Weight),
			TargetWeight: string(body.TargetWeight),
			Height:       string(body.Height),
			Age:          string(body.Age),
		})
		var pe *domain.PersistenceError
		if errors.As(err, &pe) && entry != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error(), "notSaved": true, "entry": entry})
			return
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEntryDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("index must be an integer"))
		return
	}
	if err := s.entries.DeleteAt(r.Context(), index); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": len(s.entries.Entries())})
}

func (s *Server) handleSettingsField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Value formValue `json:"value"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.entries.EditLatestField(r.Context(), r.PathValue("field"), string(body.Value))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.entries.ClearAll(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
