package star

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single STAR line. Particle rows carry a few dozen
// numeric fields, so this is generous.
const maxLineSize = 4 * 1024 * 1024

// ParseBlock reads the named block from a STAR file into a Table.
// It returns a FormatError when the block, its header section, or a
// well-formed data row is missing.
func ParseBlock(path, block string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open star file: %w", err)
	}
	defer f.Close()
	return parseBlock(f, path, block)
}

func parseBlock(r io.Reader, file, block string) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	marker := "data_" + block
	lineNo := 0

	// Locate the block marker.
	found := false
	for sc.Scan() {
		lineNo++
		if strings.TrimSpace(sc.Text()) == marker {
			found = true
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if !found {
		return nil, &FormatError{File: file, Block: block, Message: "block not found"}
	}

	// Locate loop_. Blank lines and comments may precede it; another block
	// marker means this block has no loop section at all.
	inLoop := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "data_") {
			break
		}
		if line == "loop_" {
			inLoop = true
			break
		}
		return nil, &FormatError{
			File: file, Block: block, Line: lineNo,
			Message: "unexpected line before loop_: " + line,
		}
	}
	if !inLoop {
		return nil, &FormatError{File: file, Block: block, Message: "loop_ marker missing"}
	}

	// Header lines, then data rows, until a blank line, the next block,
	// or end of file.
	var columns []string
	var t *Table
	done := false
	for !done && sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			if len(columns) > 0 {
				done = true
			}
		case strings.HasPrefix(line, "data_"):
			done = true
		case strings.HasPrefix(line, "#"):
			// comment, e.g. "# version 50001"
		case strings.HasPrefix(line, "_"):
			if t != nil {
				return nil, &FormatError{
					File: file, Block: block, Line: lineNo,
					Message: "header line after data rows",
				}
			}
			// "_rlnImageName #1" — the position comment is ignored; order
			// within the file is what counts.
			columns = append(columns, strings.TrimPrefix(strings.Fields(line)[0], "_"))
		default:
			if t == nil {
				if len(columns) == 0 {
					return nil, &FormatError{
						File: file, Block: block, Line: lineNo,
						Message: "data row before any header line",
					}
				}
				var err error
				t, err = NewTable(block, columns)
				if err != nil {
					fe := err.(*FormatError)
					fe.File = file
					return nil, fe
				}
			}
			if err := t.AppendRow(strings.Fields(line)); err != nil {
				fe := err.(*FormatError)
				fe.File = file
				fe.Line = lineNo
				return nil, fe
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if len(columns) == 0 {
		return nil, &FormatError{File: file, Block: block, Message: "header section missing"}
	}
	if t == nil {
		// Header present but zero rows. Still a valid, empty table.
		t, _ = NewTable(block, columns)
	}
	return t, nil
}

// ReadBlockRaw returns the named block's source lines exactly as written,
// from its "data_" marker up to (not including) the next block, with
// trailing blank lines trimmed. Used to copy the optics block verbatim.
func ReadBlockRaw(path, block string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open star file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	marker := "data_" + block
	var lines []string
	found := false
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if !found {
			if trimmed == marker {
				found = true
				lines = append(lines, line)
			}
			continue
		}
		if strings.HasPrefix(trimmed, "data_") {
			break
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !found {
		return nil, &FormatError{File: path, Block: block, Message: "block not found"}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
