package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"github.com/thundergore/damage-calc/internal/game"
	"github.com/thundergore/damage-calc/internal/models"
	"github.com/thundergore/damage-calc/internal/stats"
)

// ========================= JSON helpers =========================

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, code calcerr.Code) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg, Code: string(code)})
}

func statusForCode(code calcerr.Code) int {
	switch code {
	case calcerr.CodeUnsupportedExpression, calcerr.CodeUnknownRerollMode, calcerr.CodeInvalidConfig:
		return http.StatusBadRequest
	case calcerr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeCalcError maps an engine error onto an HTTP status by its code, so
// clients can rebuild the same error on their side.
func writeCalcError(w http.ResponseWriter, err error) {
	code := calcerr.GetCode(err)
	writeError(w, statusForCode(code), err.Error(), code)
}

// ========================= Evaluation =========================

// POST /api/v1/evaluate
func evaluateHandler(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), calcerr.CodeInvalidConfig)
		return
	}
	bd, err := req.Profile.Evaluate()
	if err != nil {
		writeCalcError(w, err)
		return
	}
	stats.RecordEvaluation(1)
	stats.ObserveBest(models.DailyBest{Profile: req.Profile.Name, ExpectedDamage: bd.Total, Source: "api"})
	writeJSON(w, models.EvaluateResponse{ExpectedDamage: bd.Total, Breakdown: bd})
}

// POST /api/v1/evaluate/batch
func batchHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), calcerr.CodeInvalidConfig)
		return
	}
	profiles := req.Profiles
	if req.Defender != nil {
		for i := range profiles {
			profiles[i] = profiles[i].WithDefender(*req.Defender)
		}
	}

	breakdowns, err := game.EvaluateAll(r.Context(), profiles)
	if err != nil {
		writeCalcError(w, err)
		return
	}

	resp := models.BatchResponse{Results: make([]models.ProfileResult, len(profiles))}
	for i, p := range profiles {
		bd := breakdowns[i]
		resp.Total += bd.Total
		resp.Results[i] = models.ProfileResult{
			Name:           p.Name,
			Attacks:        p.Attacks,
			Hit:            p.Hit,
			HitMod:         p.HitMod,
			Wound:          p.Wound,
			WoundMod:       p.WoundMod,
			Rend:           p.Rend,
			Damage:         p.Damage,
			ExpectedDamage: bd.Total,
			Breakdown:      bd,
		}
	}
	// Batch callers (web UI, CLI) submit their own daily-best entries with
	// their surface tag; only single evaluations are attributed here.
	stats.RecordEvaluation(len(profiles))
	writeJSON(w, resp)
}

// ========================= Presets =========================

// GET /api/v1/presets
func listPresetsHandler(store *presetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := store.list
		if list == nil {
			list = []models.Preset{}
		}
		writeJSON(w, list)
	}
}

// GET /api/v1/presets/{name}
func getPresetHandler(store *presetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		p, ok := store.byName[strings.ToLower(name)]
		if !ok {
			writeError(w, http.StatusNotFound, "unknown preset: "+name, calcerr.CodeNotFound)
			return
		}
		writeJSON(w, p)
	}
}

// ========================= Stats =========================

// GET /api/v1/stats
func statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.Totals())
}

// GET /api/v1/stats/daily
func dailyBestGetHandler(w http.ResponseWriter, r *http.Request) {
	best, ok := stats.BestToday()
	if !ok {
		writeError(w, http.StatusNotFound, "no evaluations recorded today", calcerr.CodeNotFound)
		return
	}
	writeJSON(w, best)
}

// POST /api/v1/stats/daily
func dailyBestPostHandler(w http.ResponseWriter, r *http.Request) {
	var entry models.DailyBest
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), calcerr.CodeInvalidConfig)
		return
	}
	if entry.Profile == "" {
		writeError(w, http.StatusBadRequest, "missing profile", calcerr.CodeInvalidConfig)
		return
	}
	stats.ObserveBest(entry)
	writeJSON(w, map[string]string{"status": "ok"})
}

// ========================= Misc =========================

// GET /api/v1/version
func versionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.VersionInfo{Version: buildVersion, BuildTime: buildTime})
}

// GET /healthz
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
