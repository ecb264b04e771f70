package engine

import (
	"regexp"
	"strconv"
	"strings"

	calcerr "github.com/thundergore/damage-calc/internal/errors"
)

var (
	plainNumRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	bareDieRe  = regexp.MustCompile(`(^|[+\-])d`)
	tokenRe    = regexp.MustCompile(`[+\-]?[^+\-]+`)
	diceTermRe = regexp.MustCompile(`^(\d+)d(3|6)(?:\*(\d+))?$`)
)

// ExpectedValue supports: N (integer or decimal), NdS, NdS*M, and signed sums
// of those, with S restricted to 3 or 6 and an implied N=1 ("d6" = "1d6").
// It returns the arithmetic expectation of the expression, case-insensitive,
// spaces ignored.
func ExpectedValue(expr string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	s = strings.ReplaceAll(s, " ", "")
	if plainNumRe.MatchString(s) {
		v, _ := strconv.ParseFloat(s, 64)
		return v, nil
	}
	s = bareDieRe.ReplaceAllString(s, "${1}1d")
	total := 0.0
	for _, tok := range tokenRe.FindAllString(s, -1) {
		sign := 1.0
		core := tok
		switch tok[0] {
		case '-':
			sign = -1.0
			core = tok[1:]
		case '+':
			core = tok[1:]
		}
		if m := diceTermRe.FindStringSubmatch(core); m != nil {
			n, _ := strconv.Atoi(m[1])
			sides, _ := strconv.Atoi(m[2])
			mult := 1
			if m[3] != "" {
				mult, _ = strconv.Atoi(m[3])
			}
			total += sign * float64(n) * (float64(sides) + 1) / 2 * float64(mult)
			continue
		}
		if plainNumRe.MatchString(core) {
			v, _ := strconv.ParseFloat(core, 64)
			total += sign * v
			continue
		}
		return 0, calcerr.UnsupportedExpressionf("unsupported dice expression: %s", tok)
	}
	return total, nil
}
