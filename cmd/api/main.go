package main

// damage-calc API server. Stateless evaluation endpoints plus a small
// in-memory stats ledger and a preset library loaded from YAML at boot.

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/thundergore/damage-calc/internal/models"
	"github.com/thundergore/damage-calc/internal/roster"
)

// Populated via -ldflags at build time.
var (
	buildVersion = "dev"
	buildTime    = "unknown"
)

// ========================= Presets =========================

type presetStore struct {
	list   []models.Preset
	byName map[string]models.Preset
}

func newPresetStore(presets []models.Preset) *presetStore {
	s := &presetStore{
		list:   presets,
		byName: make(map[string]models.Preset, len(presets)),
	}
	for _, p := range presets {
		s.byName[strings.ToLower(p.Name)] = p
	}
	return s
}

func loadPresetStore(path string) *presetStore {
	presets, err := roster.LoadPresets(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("presets: %s not found, serving none", path)
			return newPresetStore(nil)
		}
		log.Fatalf("presets: %v", err)
	}
	log.Printf("presets: loaded %d from %s", len(presets), path)
	return newPresetStore(presets)
}

// ========================= Middleware =========================

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("api: %s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ========================= Router =========================

func newRouter(store *presetStore) *mux.Router {
	r := mux.NewRouter()
	r.Use(withRequestID, withLogging)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/evaluate", evaluateHandler).Methods(http.MethodPost)
	api.HandleFunc("/evaluate/batch", batchHandler).Methods(http.MethodPost)
	api.HandleFunc("/presets", listPresetsHandler(store)).Methods(http.MethodGet)
	api.HandleFunc("/presets/{name}", getPresetHandler(store)).Methods(http.MethodGet)
	api.HandleFunc("/stats", statsHandler).Methods(http.MethodGet)
	api.HandleFunc("/stats/daily", dailyBestGetHandler).Methods(http.MethodGet)
	api.HandleFunc("/stats/daily", dailyBestPostHandler).Methods(http.MethodPost)
	api.HandleFunc("/version", versionHandler).Methods(http.MethodGet)

	r.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)

	return r
}

// ========================= Helpers =========================

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ========================= Main =========================

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	store := loadPresetStore(getenv("PRESETS_PATH", "data/presets.yaml"))

	port := os.Getenv("PORT")
	if port == "" {
		port = getenv("API_PORT", "8080")
	}
	addr := ":" + port

	fmt.Printf("damage-calc API %s (built %s) listening on %s\n", buildVersion, buildTime, addr)
	log.Fatal(http.ListenAndServe(addr, withCORS(newRouter(store))))
}
