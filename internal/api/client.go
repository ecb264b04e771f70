package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"github.com/thundergore/damage-calc/internal/game"
	"github.com/thundergore/damage-calc/internal/models"
)

var httpClient = &http.Client{Timeout: 8 * time.Second}

// Simple cache for the preset list to reduce redundant API calls
var (
	presetCache      []models.Preset
	presetCacheTime  time.Time
	presetCacheTTL   = 5 * time.Minute
	presetCacheMutex sync.RWMutex
)

// ResetPresetCache drops the cached preset list. Intended for tests and dev
// convenience.
func ResetPresetCache() {
	presetCacheMutex.Lock()
	presetCache = nil
	presetCacheTime = time.Time{}
	presetCacheMutex.Unlock()
}

// Config holds API configuration
type Config struct {
	BaseURL string
}

type Client struct {
	config Config
}

func NewClient(baseURL string) *Client {
	return &Client{
		config: Config{BaseURL: baseURL},
	}
}

func (c *Client) apiGet(path string, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, base+path, nil)
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) apiPost(path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	base := strings.TrimRight(c.config.BaseURL, "/")
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, base+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError turns an error payload back into a coded error, so callers can
// branch on calcerr codes the same way they do against the packages directly.
func decodeError(resp *http.Response) error {
	var apiErr models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		code := calcerr.CodeUnknown
		if apiErr.Code != "" {
			code = calcerr.Code(apiErr.Code)
		}
		return calcerr.New(code, apiErr.Error)
	}
	return fmt.Errorf("api status %d", resp.StatusCode)
}

// FetchPresets returns the server's preset list, cached briefly.
func (c *Client) FetchPresets() ([]models.Preset, error) {
	// Check cache first
	presetCacheMutex.RLock()
	if time.Since(presetCacheTime) < presetCacheTTL && len(presetCache) > 0 {
		result := make([]models.Preset, len(presetCache))
		copy(result, presetCache)
		presetCacheMutex.RUnlock()
		return result, nil
	}
	presetCacheMutex.RUnlock()

	// Fetch from API
	var res []models.Preset
	if err := c.apiGet("/api/v1/presets", &res); err != nil {
		return nil, err
	}

	// Update cache
	presetCacheMutex.Lock()
	presetCache = make([]models.Preset, len(res))
	copy(presetCache, res)
	presetCacheTime = time.Now()
	presetCacheMutex.Unlock()

	return res, nil
}

// FetchPreset returns one preset by name.
func (c *Client) FetchPreset(name string) (models.Preset, error) {
	var res models.Preset
	err := c.apiGet("/api/v1/presets/"+url.PathEscape(name), &res)
	return res, err
}

// Evaluate submits a single profile for evaluation.
func (c *Client) Evaluate(profile game.WeaponProfile) (models.EvaluateResponse, error) {
	var res models.EvaluateResponse
	err := c.apiPost("/api/v1/evaluate", models.EvaluateRequest{Profile: profile}, &res)
	return res, err
}

// EvaluateBatch submits a batch of profiles, optionally with a shared
// defender, and returns per-profile results plus the total.
func (c *Client) EvaluateBatch(req models.BatchRequest) (models.BatchResponse, error) {
	var res models.BatchResponse
	err := c.apiPost("/api/v1/evaluate/batch", req, &res)
	return res, err
}

// FetchBestToday returns today's best recorded profile. The error is
// calcerr.CodeNotFound when nothing has been recorded yet.
func (c *Client) FetchBestToday() (models.DailyBest, error) {
	var res models.DailyBest
	err := c.apiGet("/api/v1/stats/daily", &res)
	return res, err
}

// ReportBest submits a candidate for today's best profile.
func (c *Client) ReportBest(entry models.DailyBest) error {
	return c.apiPost("/api/v1/stats/daily", entry, nil)
}

// FetchVersion returns the server build info.
func (c *Client) FetchVersion() (models.VersionInfo, error) {
	var res models.VersionInfo
	err := c.apiGet("/api/v1/version", &res)
	return res, err
}
