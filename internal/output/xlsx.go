package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thundergore/damage-calc/internal/models"

	"github.com/xuri/excelize/v2"
)

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

var xlsxHeaders = []string{
	"Profile", "Attacks", "Hit", "Wound", "Rend", "Damage",
	"Normal", "Mortal", "Expected",
}

// ExportXLSX writes the results table plus a total row to an xlsx workbook
// and returns the written filename. An empty path derives a timestamped name
// from the roster name in the working directory.
func ExportXLSX(path, rosterName string, results []models.ProfileResult, total float64) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := "Sheet1"

	for i, h := range xlsxHeaders {
		f.SetCellValue(sheet, fmt.Sprintf("%s1", colName(i+1)), h)
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", err
	}
	lastCol := colName(len(xlsxHeaders))
	if err := f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", lastCol), headerStyleID); err != nil {
		return "", err
	}

	for rowIdx, r := range results {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Attacks)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), FormatTargetMod(r.Hit, r.HitMod))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), FormatTargetMod(r.Wound, r.WoundMod))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Rend)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Damage)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Breakdown.NormalDamage)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Breakdown.MortalDamage)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.ExpectedDamage)
	}

	totalRow := len(results) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("I%d", totalRow), total)

	// Three decimals, matching the text table.
	numFmt := "0.000"
	numStyleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return "", err
	}
	if err := f.SetCellStyle(sheet, "G2", fmt.Sprintf("I%d", totalRow), numStyleID); err != nil {
		return "", err
	}

	if path == "" {
		name := strings.ReplaceAll(rosterName, " ", "_")
		if name == "" {
			name = "roster"
		}
		timestamp := time.Now().Format("20060102")
		path = fmt.Sprintf("%s_damage_%s.xlsx", timestamp, name)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
