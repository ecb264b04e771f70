package main

// damage-calc web UI. Serves the embedded calculator page and a WebSocket
// endpoint that evaluates rosters through the API service.

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thundergore/damage-calc/internal/api"
	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"github.com/thundergore/damage-calc/internal/game"
	"github.com/thundergore/damage-calc/internal/models"
)

// ========================= Config (env-configurable) =========================
// Defaults can be overridden via environment variables:
//   WEB_PORT   (default: 8081)
//   API_BASE   (default: http://localhost:8080)

var (
	webListenAddr string
	apiClient     *api.Client
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func init() {
	p := os.Getenv("PORT")
	if p == "" {
		p = getenv("WEB_PORT", "8081")
	}
	webListenAddr = ":" + p
	apiClient = api.NewClient(getenv("API_BASE", "http://localhost:8080"))
}

// ========================= HTTP handlers =========================

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := strings.ReplaceAll(indexHTML, "{{BUILD_VERSION}}", buildVersion)
	fmt.Fprint(w, html)
}

// fallbackPresets keeps the dropdown usable when the API is unreachable.
var fallbackPresets = []models.Preset{
	{
		Name:        "Clanrats (blades)",
		Description: "10 attacks, 4+/4+, no rend",
		Profile: game.WeaponProfile{
			Name: "rusty blades", Attacks: 10, Hit: 4, Wound: 4, Rend: 0,
			Damage: "1", TargetSave: 4, Effects: game.NewEffects(),
		},
	},
	{
		Name:        "Rat Ogors (claws)",
		Description: "hard-hitting elite profile",
		Profile: game.WeaponProfile{
			Name: "claws and blades", Attacks: 4, Hit: 4, Wound: 3, Rend: -1,
			Damage: "2", TargetSave: 4, Effects: game.NewEffects(),
		},
	},
}

func handlePresets(w http.ResponseWriter, r *http.Request) {
	list, err := apiClient.FetchPresets()
	if err != nil || len(list) == 0 {
		if err != nil {
			log.Printf("presets: api unreachable, serving fallback: %v", err)
		}
		list = fallbackPresets
	}
	writeJSON(w, list)
}

func handleBest(w http.ResponseWriter, r *http.Request) {
	best, err := apiClient.FetchBestToday()
	if err != nil {
		if !calcerr.IsNotFound(err) {
			log.Printf("daily best: %v", err)
		}
		writeJSON(w, models.DailyBest{})
		return
	}
	writeJSON(w, best)
}

// ========================= WebSocket =========================

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	id := fmt.Sprintf("s_%d", time.Now().UnixNano())
	log.Printf("ws: connect id=%s from=%s", id, r.RemoteAddr)
	go wsReader(id, conn)
}

func wsReader(id string, conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
		log.Printf("ws: disconnect id=%s", id)
	}()
	for {
		var msg clientIn
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "evaluate":
			handleEvaluate(conn, msg.Data)
		case "ping":
			_ = conn.WriteJSON(models.WsMsg{Type: "pong"})
		default:
			writeWsError(conn, "unknown message type: "+msg.Type, "")
		}
	}
}

func handleEvaluate(conn *websocket.Conn, data json.RawMessage) {
	var req models.WsEvaluate
	if err := json.Unmarshal(data, &req); err != nil {
		writeWsError(conn, "malformed evaluate payload: "+err.Error(), calcerr.CodeInvalidConfig)
		return
	}
	if len(req.Profiles) == 0 {
		writeWsError(conn, "no profiles to evaluate", calcerr.CodeInvalidConfig)
		return
	}
	resp, err := apiClient.EvaluateBatch(models.BatchRequest{Defender: req.Defender, Profiles: req.Profiles})
	if err != nil {
		writeWsError(conn, err.Error(), calcerr.GetCode(err))
		return
	}
	reportBest(resp)
	_ = conn.WriteJSON(models.WsMsg{Type: "results", Data: resp})
}

func writeWsError(conn *websocket.Conn, msg string, code calcerr.Code) {
	_ = conn.WriteJSON(models.WsMsg{Type: "error", Data: models.WsError{Message: msg, Code: string(code)}})
}

// reportBest submits the strongest profile of a batch to the daily ledger,
// tagged as a web evaluation. Failures only log; the results still render.
func reportBest(resp models.BatchResponse) {
	var best models.DailyBest
	for _, r := range resp.Results {
		if r.ExpectedDamage > best.ExpectedDamage {
			best = models.DailyBest{Profile: r.Name, ExpectedDamage: r.ExpectedDamage, Source: "web"}
		}
	}
	if best.Profile == "" {
		return
	}
	if err := apiClient.ReportBest(best); err != nil {
		log.Printf("report best: %v", err)
	}
}

// ========================= Main =========================

func main() {
	http.HandleFunc("/", serveIndex)
	http.HandleFunc("/ws", handleWS)
	http.HandleFunc("/api/presets", handlePresets)
	http.HandleFunc("/api/best", handleBest)
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	http.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{
			"version": buildVersion,
			"time":    buildTime,
		})
	})

	log.Printf("damage-calc web listening on %s (API_BASE=%s)", webListenAddr, getenv("API_BASE", "http://localhost:8080"))
	log.Fatal(http.ListenAndServe(webListenAddr, nil))
}
