// Package export writes operations and quarterly reports to files.
package export

import (
	"fmt"
	"strings"

	"github.com/sadopc/ekwiwalent/internal/report"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported formats in picker order.
var Formats = []Format{FormatCSV, FormatJSON, FormatXLSX}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q: want csv, json or xlsx", s)
}

// Filename is the default file name for a report export.
func Filename(r *report.QuarterlyReport, f Format) string {
	return fmt.Sprintf("ekwiwalent-%s-%d.%s", r.Range.Quarter, r.Range.Year, f)
}

// Report writes r in the given format. CSV carries the detail list only.
func Report(r *report.QuarterlyReport, f Format, path string) error {
	switch f {
	case FormatCSV:
		return ToCSV(r.Operations, path)
	case FormatJSON:
		return ToJSON(r, path)
	case FormatXLSX:
		return ToXLSX(r, path)
	}
	return fmt.Errorf("unknown export format %q", f)
}
