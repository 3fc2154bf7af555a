package star

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed or incomplete STAR file: a missing
// block, a missing required column, or a data row whose field count
// disagrees with the header.
type FormatError struct {
	File    string
	Block   string
	Line    int // 1-based line in File, 0 when not applicable
	Message string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("star format error")
	if e.File != "" {
		fmt.Fprintf(&b, " in %s", e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Block != "" {
		fmt.Fprintf(&b, " (data_%s)", e.Block)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
