package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Fprint writes t to w as a bordered table:
//
//	+------+-----+
//	| Name | Pop |
//	+------+-----+
//	| Oslo | 500 |
//	+------+-----+
//
// An empty table prints only the notFound line.
func Fprint(w io.Writer, t Table, notFound string) error {
	if t.Empty() {
		_, err := fmt.Fprintln(w, notFound)
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(t.Headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment(alignments(t.Numeric))
	table.AppendBulk(t.Rows)
	table.Render()

	_, err := buf.WriteTo(w)
	return err
}

func alignments(numeric []bool) []int {
	align := make([]int, len(numeric))
	for i, n := range numeric {
		if n {
			align[i] = tablewriter.ALIGN_RIGHT
		} else {
			align[i] = tablewriter.ALIGN_LEFT
		}
	}
	return align
}
