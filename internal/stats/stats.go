package stats

import (
	"sync"
	"time"

	"github.com/thundergore/damage-calc/internal/models"
)

// Process-wide usage stats (in-memory; restarts reset them)
var (
	statsMu     sync.Mutex
	evaluations int
	profiles    int
	// Best single-profile expected damage by date string YYYY-MM-DD UTC
	dailyBest = make(map[string]models.DailyBest)
)

// RecordEvaluation counts one evaluation request covering n profiles.
func RecordEvaluation(n int) {
	statsMu.Lock()
	defer statsMu.Unlock()
	evaluations++
	profiles += n
}

// Totals returns the counters accumulated since process start.
func Totals() models.StatsTotals {
	statsMu.Lock()
	defer statsMu.Unlock()
	return models.StatsTotals{Evaluations: evaluations, Profiles: profiles}
}

// ObserveBest keeps entry if it beats today's best expected damage.
// The date field is stamped here, in UTC.
func ObserveBest(entry models.DailyBest) {
	if entry.Profile == "" {
		return
	}
	dateKey := time.Now().UTC().Format("2006-01-02")
	entry.Date = dateKey

	statsMu.Lock()
	defer statsMu.Unlock()
	cur, ok := dailyBest[dateKey]
	if !ok || entry.ExpectedDamage > cur.ExpectedDamage {
		dailyBest[dateKey] = entry
	}
}

// BestToday returns today's best entry, if any was recorded.
func BestToday() (models.DailyBest, bool) {
	dateKey := time.Now().UTC().Format("2006-01-02")

	statsMu.Lock()
	defer statsMu.Unlock()
	b, ok := dailyBest[dateKey]
	return b, ok
}

// Reset clears all in-memory stats.
// Intended for tests and dev convenience.
func Reset() {
	statsMu.Lock()
	defer statsMu.Unlock()
	evaluations = 0
	profiles = 0
	for k := range dailyBest {
		delete(dailyBest, k)
	}
}
