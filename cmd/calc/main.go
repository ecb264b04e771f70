package main

// damage-calc CLI. Evaluates a YAML roster locally and prints a result
// table, with optional JSON/XLSX output, a phase-by-phase trace log, and
// daily-best reporting to a running API.

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thundergore/damage-calc/internal/api"
	"github.com/thundergore/damage-calc/internal/game"
	"github.com/thundergore/damage-calc/internal/models"
	"github.com/thundergore/damage-calc/internal/output"
	"github.com/thundergore/damage-calc/internal/roster"
	"github.com/thundergore/damage-calc/internal/trace"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

type options struct {
	rosterPath string
	xlsxPath   string
	jsonOut    bool
	tracePath  string
	apiBase    string
	version    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.rosterPath, "roster", "data/roster.yaml", "path to the roster YAML")
	flag.StringVar(&opts.xlsxPath, "xlsx", "", "write an XLSX report to this path")
	flag.BoolVar(&opts.jsonOut, "json", false, "print results as JSON instead of a table")
	flag.StringVar(&opts.tracePath, "trace", "", "write a phase-by-phase trace log to this path")
	flag.StringVar(&opts.apiBase, "api", "", "report the day's best profile to this API base URL")
	flag.BoolVar(&opts.version, "version", false, "print version and exit")
	flag.Parse()
	os.Exit(run(opts, os.Stdout))
}

func run(opts options, out io.Writer) int {
	if opts.version {
		fmt.Fprintf(out, "damage-calc %s (built %s)\n", buildVersion, buildTime)
		return 0
	}

	ros, err := roster.Load(opts.rosterPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	breakdowns, err := game.EvaluateAll(context.Background(), ros.Profiles)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var tr *trace.Tracer
	if opts.tracePath != "" {
		tr, err = trace.New(opts.tracePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer tr.Close()
	}

	results := make([]models.ProfileResult, len(ros.Profiles))
	total := 0.0
	for i, p := range ros.Profiles {
		bd := breakdowns[i]
		total += bd.Total
		results[i] = models.ProfileResult{
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
		tr.LogBreakdown(p.Name, bd)
	}

	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(models.BatchResponse{Total: total, Results: results}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		if err := output.WriteTable(out, results); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintf(out, "\nTotal expected damage: %.3f\n", total)
	}

	if opts.xlsxPath != "" {
		path, err := output.ExportXLSX(opts.xlsxPath, ros.Name, results, total)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}

	if opts.apiBase != "" {
		reportBest(opts.apiBase, results)
	}

	return 0
}

// reportBest submits the strongest profile to the API's daily ledger. A dead
// API only logs; local results already printed.
func reportBest(base string, results []models.ProfileResult) {
	var best models.DailyBest
	for _, r := range results {
		if r.ExpectedDamage > best.ExpectedDamage {
			best = models.DailyBest{Profile: r.Name, ExpectedDamage: r.ExpectedDamage, Source: "cli"}
		}
	}
	if best.Profile == "" {
		return
	}
	if err := api.NewClient(base).ReportBest(best); err != nil {
		fmt.Fprintf(os.Stderr, "report best: %v\n", err)
	}
}
