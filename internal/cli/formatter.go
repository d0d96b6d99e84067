package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/sizefinder/internal/sizefinder"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2

	// TimeLayout is the layout used for start and end times.
	TimeLayout = "2006-01-02 15:04:05.000000"
)

// jsonEntry is a report entry with its display size.
type jsonEntry struct {
	sizefinder.NamedSize

	Human string `json:"human"`
}

// jsonStats is the JSON document written by PrintJSON.
type jsonStats struct {
	Path           string        `json:"path"`
	Entries        []jsonEntry   `json:"entries"`
	TotalBytes     int64         `json:"total_bytes"`
	Total          string        `json:"total"`
	Aborted        bool          `json:"aborted"`
	ErrorCount     int64         `json:"error_count"`
	Started        time.Time     `json:"started"`
	Elapsed        time.Duration `json:"elapsed"`
	BytesPerSecond float64       `json:"bytes_per_second"`
}

// PrintJSON outputs the ordered report and summary in JSON format.
func PrintJSON(stats *sizefinder.Stats, writer io.Writer) error {
	report := sizefinder.BuildReport(stats.Entries)

	out := jsonStats{
		Path:           stats.Path,
		Entries:        make([]jsonEntry, 0, len(report.Entries)),
		TotalBytes:     report.Total,
		Total:          sizefinder.FormatBytes(report.Total),
		Aborted:        stats.Aborted,
		ErrorCount:     stats.ErrorCount,
		Started:        stats.Started,
		Elapsed:        stats.Elapsed,
		BytesPerSecond: stats.BytesPerSecond(report.Total),
	}

	for _, e := range report.Entries {
		out.Entries = append(out.Entries, jsonEntry{NamedSize: e, Human: sizefinder.Format(e.Size)})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the ordered report followed by a summary of the scan.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(stats *sizefinder.Stats, writer io.Writer) error {
	total, err := sizefinder.BuildAndPrint(writer, stats.Entries)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nStarted at:\t%s\n", stats.Started.Format(TimeLayout))
	fmt.Fprintf(w, "Scanned:\t%s worth of files (%s bytes)\n",
		sizefinder.FormatBytes(total), humanize.Comma(total))
	fmt.Fprintf(w, "Ended at:\t%s\n", stats.Ended().Format(TimeLayout))
	fmt.Fprintf(w, "Elapsed:\t%v\n", stats.Elapsed)
	fmt.Fprintf(w, "Avg speed:\t%s per second\n", sizefinder.FormatRate(stats.BytesPerSecond(total)))

	if stats.ErrorCount > 0 {
		fmt.Fprintf(w, "Unreadable paths:\t%d\n", stats.ErrorCount)
	}

	return w.Flush()
}
