package models

import "github.com/thundergore/damage-calc/internal/game"

// ========================= Wire Models =========================
// Request/response shapes shared by the API service, its client, and the
// web UI.

type EvaluateRequest struct {
	Profile game.WeaponProfile `json:"profile"`
}

type EvaluateResponse struct {
	ExpectedDamage float64        `json:"expected_damage"`
	Breakdown      game.Breakdown `json:"breakdown"`
}

type BatchRequest struct {
	// Defender, when present, replaces the defensive context of every profile
	Defender *game.Defender       `json:"defender,omitempty"`
	Profiles []game.WeaponProfile `json:"profiles"`
}

// ProfileResult echoes the evaluated profile's table row next to its result,
// so renderers never re-join inputs and outputs.
type ProfileResult struct {
	Name           string         `json:"name"`
	Attacks        int            `json:"attacks"`
	Hit            int            `json:"hit"`
	HitMod         int            `json:"hit_mod"`
	Wound          int            `json:"wound"`
	WoundMod       int            `json:"wound_mod"`
	Rend           int            `json:"rend"`
	Damage         string         `json:"damage"`
	ExpectedDamage float64        `json:"expected_damage"`
	Breakdown      game.Breakdown `json:"breakdown"`
}

type BatchResponse struct {
	Total   float64         `json:"total"`
	Results []ProfileResult `json:"results"`
}

// Preset is a named, ready-to-load weapon profile served by the API.
type Preset struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Profile     game.WeaponProfile `json:"profile" yaml:"profile"`
}

// DailyBest is the highest single-profile expected damage seen today.
type DailyBest struct {
	Date           string  `json:"date"` // YYYY-MM-DD, UTC
	Profile        string  `json:"profile"`
	ExpectedDamage float64 `json:"expected_damage"`
	Source         string  `json:"source,omitempty"` // "web", "api" or "cli"
}

type StatsTotals struct {
	Evaluations int `json:"evaluations"`
	Profiles    int `json:"profiles"`
}

type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WebSocket message structure
type WsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WsEvaluate is the client payload on a "evaluate" message; the reply is a
// "results" message carrying a BatchResponse.
type WsEvaluate struct {
	Defender *game.Defender       `json:"defender,omitempty"`
	Profiles []game.WeaponProfile `json:"profiles"`
}

// WsError is the payload of an "error" reply.
type WsError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
