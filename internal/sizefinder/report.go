package sizefinder

import (
	"fmt"
	"io"
	"sort"
)

// Report is the ordered result of a scan.
type Report struct {
	// Entries are sorted by size, largest first, unmeasurable entries last.
	Entries []NamedSize `json:"entries"`
	// Total is the sum of all measurable sizes.
	Total int64 `json:"total_bytes"`
}

// BuildReport orders entries by descending size and totals them.
// The input slice is left untouched.
func BuildReport(entries []NamedSize) *Report {
	sorted := make([]NamedSize, len(entries))
	copy(sorted, entries)

	// Sort by size (largest first), keeping collection order for ties
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size.rank() > sorted[j].Size.rank()
	})

	var total int64
	for _, e := range sorted {
		total += e.Size.OrZero()
	}

	return &Report{Entries: sorted, Total: total}
}

// Print writes the ordered entries to w, one "<name>: <size>" line each,
// framed by a header and a footer.
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Ordering Items..."); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Showing Ordered Results:\n#######"); err != nil {
		return err
	}

	for _, e := range r.Entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Name, Format(e.Size)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "######")

	return err
}

// BuildAndPrint sorts entries, prints the ordered report to w and returns the
// total number of measured bytes.
func BuildAndPrint(w io.Writer, entries []NamedSize) (int64, error) {
	report := BuildReport(entries)

	if err := report.Print(w); err != nil {
		return report.Total, fmt.Errorf("printing report: %w", err)
	}

	return report.Total, nil
}
