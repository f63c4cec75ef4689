// Package report renders finished intervals in the formats the CLI offers.
// Plain and CSV output come straight from the timer package; the others are
// built from a Snapshot.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/ivtimer/pkg/timer"
)

// Format selects an output rendering
type Format string

const (
	FormatPlain      Format = "plain"
	FormatCSV        Format = "csv"
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatPrometheus Format = "prometheus"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatPlain, FormatCSV, FormatTable, FormatJSON, FormatYAML, FormatPrometheus}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatPlain, nil
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return FormatPlain, fmt.Errorf("unknown output format %q", s)
}

// Write renders intervals to w. marker prefixes the CSV header.
func Write(w io.Writer, format Format, marker string, intervals []*timer.Interval) error {
	switch format {
	case FormatPlain, "":
		return timer.Report(w, intervals)
	case FormatCSV:
		return timer.ReportCSV(w, marker, intervals)
	case FormatTable:
		return writeTable(w, intervals)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(NewSnapshot(intervals))
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewSnapshot(intervals)); err != nil {
			return err
		}
		return encoder.Close()
	case FormatPrometheus:
		return PrometheusExport(w, NewSnapshot(intervals))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, intervals []*timer.Interval) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Clock", "Elapsed", "Unit", "State")

	for _, iv := range intervals {
		r := NewResult(iv)
		if err := table.Append(r.Name, r.Clock, fmt.Sprintf("%.3f", r.Elapsed), r.Unit, string(r.State)); err != nil {
			return fmt.Errorf("append row %q: %w", r.Name, err)
		}
	}

	return table.Render()
}
