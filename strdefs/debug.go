package strdefs

import (
	"fmt"

	"sdgen/utils/debug"
)

// String returns readable dump of the table. It exists solely for debug
// reports and manual inspection.
func (t *Table) String() string {
	if t == nil {
		return "<nil Table>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "String table: %d", t.Len())
	for i, e := range t.entries {
		tw.TextBlock(1, fmt.Sprintf("[%d] %s", i, e.Name), e.Text)
	}
	return tw.String()
}
