package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"github.com/thundergore/damage-calc/internal/game"
	"github.com/thundergore/damage-calc/internal/models"
	"github.com/thundergore/damage-calc/internal/stats"
)

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func longswords() game.WeaponProfile {
	return game.WeaponProfile{
		Name:       "longswords",
		Attacks:    4,
		Hit:        3,
		Wound:      3,
		Rend:       -1,
		Damage:     "2",
		TargetSave: 4,
		Effects:    game.NewEffects(),
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	stats.Reset()
	router := newRouter(newPresetStore(nil))

	rec := doRequest(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{Profile: longswords()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp models.EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 2.370370370, resp.ExpectedDamage, 1e-6)
	assert.InDelta(t, resp.ExpectedDamage, resp.Breakdown.Total, 1e-12)

	totals := stats.Totals()
	assert.Equal(t, 1, totals.Evaluations)
}

func TestEvaluateRejectsBadDamage(t *testing.T) {
	router := newRouter(newPresetStore(nil))

	p := longswords()
	p.Damage = "2d4"
	rec := doRequest(t, router, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{Profile: p})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, string(calcerr.CodeUnsupportedExpression), apiErr.Code)
	assert.Contains(t, apiErr.Error, "2d4")
}

func TestEvaluateRejectsInvalidJSON(t *testing.T) {
	router := newRouter(newPresetStore(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, string(calcerr.CodeInvalidConfig), apiErr.Code)
}

func TestBatchEndpoint(t *testing.T) {
	stats.Reset()
	router := newRouter(newPresetStore(nil))

	picks := longswords()
	picks.Name = "picks"
	picks.Attacks = 2
	picks.Hit = 4
	picks.Wound = 4
	picks.Rend = 0
	picks.Damage = "1"

	req := models.BatchRequest{
		Defender: &game.Defender{Save: 4},
		Profiles: []game.WeaponProfile{longswords(), picks},
	}
	rec := doRequest(t, router, http.MethodPost, "/api/v1/evaluate/batch", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "longswords", resp.Results[0].Name)
	assert.Equal(t, "picks", resp.Results[1].Name)
	assert.InDelta(t, 2.370370370, resp.Results[0].ExpectedDamage, 1e-6)
	assert.InDelta(t, 0.25, resp.Results[1].ExpectedDamage, 1e-6)
	assert.InDelta(t, resp.Results[0].ExpectedDamage+resp.Results[1].ExpectedDamage, resp.Total, 1e-12)

	totals := stats.Totals()
	assert.Equal(t, 1, totals.Evaluations)
	assert.Equal(t, 2, totals.Profiles)

	// Batches do not set the daily best; callers submit their own entries.
	_, ok := stats.BestToday()
	assert.False(t, ok)
}

func TestBatchNamesOffendingProfile(t *testing.T) {
	router := newRouter(newPresetStore(nil))

	bad := longswords()
	bad.Name = "warpstone"
	bad.Damage = "d20"
	req := models.BatchRequest{Profiles: []game.WeaponProfile{longswords(), bad}}

	rec := doRequest(t, router, http.MethodPost, "/api/v1/evaluate/batch", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, string(calcerr.CodeUnsupportedExpression), apiErr.Code)
	assert.Contains(t, apiErr.Error, "profile 2 (warpstone)")
}

func TestPresetRoutes(t *testing.T) {
	store := newPresetStore([]models.Preset{
		{Name: "Rat Ogors", Description: "big rats", Profile: longswords()},
		{Name: "Clanrats", Profile: longswords()},
	})
	router := newRouter(store)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Preset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Rat Ogors", list[0].Name)

	// Lookup is case-insensitive and path-unescaped.
	rec = doRequest(t, router, http.MethodGet, "/api/v1/presets/rat%20ogors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var preset models.Preset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preset))
	assert.Equal(t, "Rat Ogors", preset.Name)
	assert.Equal(t, "big rats", preset.Description)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/presets/doomwheel", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	var apiErr models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, string(calcerr.CodeNotFound), apiErr.Code)
}

func TestEmptyPresetListIsNotNull(t *testing.T) {
	router := newRouter(newPresetStore(nil))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[]")
}

func TestDailyBestRoutes(t *testing.T) {
	stats.Reset()
	router := newRouter(newPresetStore(nil))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/stats/daily", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	entry := models.DailyBest{Profile: "doom flayer", ExpectedDamage: 6.5, Source: "web"}
	rec = doRequest(t, router, http.MethodPost, "/api/v1/stats/daily", entry)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/v1/stats/daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var best models.DailyBest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &best))
	assert.Equal(t, "doom flayer", best.Profile)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), best.Date)

	// A submission without a profile name is rejected.
	rec = doRequest(t, router, http.MethodPost, "/api/v1/stats/daily", models.DailyBest{ExpectedDamage: 99})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndVersion(t *testing.T) {
	router := newRouter(newPresetStore(nil))

	rec := doRequest(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info models.VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "dev", info.Version)
}

func TestMethodNotAllowed(t *testing.T) {
	router := newRouter(newPresetStore(nil))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/evaluate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
