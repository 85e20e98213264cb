package data

import (
	"html"
	"strings"
)

// HTML renders the table as an HTML <table> string for rich front ends:
// a header row of column names followed by one row per table row, in
// column order. Cell text is escaped.
func (t *Table) HTML() string {
	var b strings.Builder
	b.WriteString(`<table class="tabkit-data-Table" style="border-collapse:collapse;border:none">`)

	b.WriteString(`<tr style="border:none;border-bottom:1px solid #292724">`)
	for _, name := range t.names {
		b.WriteString(`<th style="text-align:left;border:none;padding-right:1em">`)
		b.WriteString(html.EscapeString(name))
		b.WriteString(`</th>`)
	}
	b.WriteString(`</tr>`)

	for i := 0; i < t.Len(); i++ {
		b.WriteString(`<tr style="border:none">`)
		for _, name := range t.names {
			b.WriteString(`<td style="border:none;padding-right:1em">`)
			b.WriteString(html.EscapeString(t.columns[name][i].Formatted))
			b.WriteString(`</td>`)
		}
		b.WriteString(`</tr>`)
	}

	b.WriteString(`</table>`)
	return b.String()
}
