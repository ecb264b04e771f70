package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/thundergore/damage-calc/internal/models"
)

// FormatTargetMod renders a target number beside its modifier, e.g. "3 (+1)".
func FormatTargetMod(target, mod int) string {
	return fmt.Sprintf("%d (%+d)", target, mod)
}

// WriteTable renders one aligned row per result. Expected damage is shown to
// three decimals; the caller prints the total line.
func WriteTable(w io.Writer, results []models.ProfileResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tATTACKS\tHIT\tWOUND\tREND\tDAMAGE\tEXPECTED")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\t%.3f\n",
			r.Name,
			r.Attacks,
			FormatTargetMod(r.Hit, r.HitMod),
			FormatTargetMod(r.Wound, r.WoundMod),
			r.Rend,
			r.Damage,
			r.ExpectedDamage)
	}
	return tw.Flush()
}
