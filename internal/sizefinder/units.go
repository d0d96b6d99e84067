package sizefinder

import (
	"fmt"

	"github.com/docker/go-units"
)

// unitBase is the decimal scale between successive units.
const unitBase = 1000.0

// Unscanned is displayed for entries whose size could not be read.
const Unscanned = "Unscanned"

// unitLabels are the display labels, smallest first. Sizes beyond the last
// label stay in that label.
//
//nolint:gochecknoglobals // Lookup table
var unitLabels = []string{"bytes", "KB", "MB", "GB", "TB"}

// Format converts a measurement into the largest reasonable unit, e.g. "3.14 GB".
// Sizes below 1000 are shown as whole bytes and unmeasurable entries as "Unscanned".
func Format(m Measurement) string {
	n, ok := m.Bytes()
	if !ok {
		return Unscanned
	}

	return FormatBytes(n)
}

// FormatBytes converts a byte count into the largest reasonable unit.
func FormatBytes(n int64) string {
	if n < unitBase {
		return fmt.Sprintf("%d bytes", n)
	}

	return units.CustomSize("%.2f %s", float64(n), unitBase, unitLabels)
}

// FormatRate converts a throughput in bytes per second into the largest
// reasonable unit. Rates below 1000 are truncated to whole bytes.
func FormatRate(bytesPerSecond float64) string {
	if bytesPerSecond < unitBase {
		return fmt.Sprintf("%d bytes", int64(bytesPerSecond))
	}

	return units.CustomSize("%.2f %s", bytesPerSecond, unitBase, unitLabels)
}
