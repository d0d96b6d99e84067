package sizefinder

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Measurement is the size of a filesystem entry in bytes, or the absence of one
// when the entry could not be measured.
//
// The zero value is unmeasurable.
type Measurement struct {
	bytes int64
	valid bool
}

// Measured returns a Measurement holding n bytes.
func Measured(n int64) Measurement {
	return Measurement{bytes: n, valid: true}
}

// Unmeasurable returns a Measurement marking an entry whose size could not be read.
func Unmeasurable() Measurement {
	return Measurement{}
}

// Bytes returns the byte count and whether the measurement succeeded.
func (m Measurement) Bytes() (int64, bool) {
	return m.bytes, m.valid
}

// Valid reports whether the measurement holds a byte count.
func (m Measurement) Valid() bool {
	return m.valid
}

// OrZero returns the byte count, or 0 for an unmeasurable entry.
func (m Measurement) OrZero() int64 {
	if !m.valid {
		return 0
	}

	return m.bytes
}

// rank orders measurements so that unmeasurable entries fall below any real
// byte count, including zero.
func (m Measurement) rank() int64 {
	if !m.valid {
		return -1
	}

	return m.bytes
}

// String returns the human-readable size.
func (m Measurement) String() string {
	return Format(m)
}

// MarshalJSON encodes the byte count, or null when unmeasurable.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}

	return json.Marshal(m.bytes)
}

// NamedSize is a single top-level child and its measured size.
type NamedSize struct {
	// Name is the entry name relative to the scanned directory.
	Name string `json:"name"`
	// Size is the measured size of the entry.
	Size Measurement `json:"size"`
	// Dir indicates whether the entry is a folder.
	Dir bool `json:"dir"`
}

// Stats holds the outcome of a single scan.
type Stats struct {
	// Path is the scanned directory.
	Path string `json:"path"`
	// Entries are the top-level children in collection order.
	Entries []NamedSize `json:"entries"`
	// Aborted indicates whether collection was interrupted.
	Aborted bool `json:"aborted"`
	// ErrorCount is the number of paths that could not be measured.
	ErrorCount int64 `json:"error_count"`
	// Started is the time the scan began.
	Started time.Time `json:"started"`
	// Elapsed is the total time taken for collection.
	Elapsed time.Duration `json:"elapsed"`
}

// BytesPerSecond returns the average throughput for the given number of
// scanned bytes, or 0 when no time has elapsed.
func (s *Stats) BytesPerSecond(total int64) float64 {
	if s.Elapsed <= 0 {
		return 0
	}

	return float64(total) / s.Elapsed.Seconds()
}

// Ended returns the time the scan finished.
func (s *Stats) Ended() time.Time {
	return s.Started.Add(s.Elapsed)
}

// Options configures a scan.
type Options struct {
	// Path is the directory whose children are measured.
	Path string
	// Progress receives the per-child "Scanning" lines. Nil discards them.
	Progress io.Writer
	// Log receives diagnostics about unreadable paths. Nil discards them.
	Log logrus.FieldLogger
	// Output represents output format (table or json).
	Output string
	// Debug indicates whether debug output is enabled.
	Debug bool
}
