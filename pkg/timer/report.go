package timer

import (
	"bufio"
	"fmt"
	"io"
)

// Report writes "<name>: <elapsed> <unit>" for each interval, in order, with
// the elapsed time in the interval's own unit to three decimals.
func Report(w io.Writer, intervals []*Interval) error {
	bw := bufio.NewWriter(w)
	for _, iv := range intervals {
		fmt.Fprintf(bw, "%s: %.3f %s\n", iv.name, iv.Elapsed(), iv.timer().FormatUnit(iv.unit))
	}
	return bw.Flush()
}

// ReportCSV writes a header line prefixed by marker and one line of values:
//
//	# Test 1 (s), Test 2 (s)
//	1.000, 1.500
func ReportCSV(w io.Writer, marker string, intervals []*Interval) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s ", marker)
	for i, iv := range intervals {
		if i > 0 {
			bw.WriteString(", ")
		}
		fmt.Fprintf(bw, "%s (%s)", iv.name, iv.timer().FormatUnit(iv.unit))
	}
	bw.WriteString("\n")

	for i, iv := range intervals {
		if i > 0 {
			bw.WriteString(", ")
		}
		fmt.Fprintf(bw, "%.3f", iv.Elapsed())
	}
	bw.WriteString("\n")

	return bw.Flush()
}
