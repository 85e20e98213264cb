package cli

import (
	"fmt"
	"io"
	"strings"

	"tabkit/data"
)

// printTable writes an aligned, human-readable rendering of the table:
// a header row, a separator, and one line per row.
func printTable(w io.Writer, t *data.Table) error {
	headers := t.Names()
	widths := make([]int, len(headers))
	for j := range headers {
		widths[j] = len(headers[j])
	}

	rows := make([][]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		values, err := t.RowValues(i)
		if err != nil {
			return err
		}
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = v.Formatted
			if len(row[j]) > widths[j] {
				widths[j] = len(row[j])
			}
		}
		rows[i] = row
	}

	fields := make([]string, len(headers))
	for j := range headers {
		fields[j] = pad(headers[j], widths[j])
	}
	fmt.Fprintln(w, strings.Join(fields, "   "))

	for j := range headers {
		fields[j] = strings.Repeat("-", widths[j])
	}
	fmt.Fprintln(w, strings.Join(fields, "   "))

	for _, row := range rows {
		for j := range row {
			fields[j] = pad(row[j], widths[j])
		}
		fmt.Fprintln(w, strings.Join(fields, "   "))
	}
	return nil
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-len(s))
}
