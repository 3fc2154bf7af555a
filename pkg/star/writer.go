package star

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// versionHeader matches what RELION writes at the top of its result files.
const versionHeader = "# version 50001"

// Write serializes the tables in order as one STAR file, prefixed by the
// RELION version header. Output is byte-deterministic and round-trips
// through ParseBlock.
func Write(w io.Writer, tables ...*Table) error {
	return WriteWithOptics(w, nil, tables...)
}

// WriteWithOptics writes the version header, the raw optics block lines
// when present, then the tables. Optics lines are copied verbatim so the
// downstream tool sees exactly the metadata the classification produced.
func WriteWithOptics(w io.Writer, optics []string, tables ...*Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", versionHeader)
	if len(optics) > 0 {
		for _, line := range optics {
			fmt.Fprintln(bw, line)
		}
		fmt.Fprintln(bw)
	}
	for _, t := range tables {
		fmt.Fprintf(bw, "data_%s\n\n", t.Block)
		fmt.Fprintln(bw, "loop_")
		for i, col := range t.Columns {
			fmt.Fprintf(bw, "_%s #%d\n", col, i+1)
		}
		for _, row := range t.Rows {
			fmt.Fprintln(bw, strings.Join(row, " "))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteFile writes the tables to path, creating parent directories.
func WriteFile(path string, optics []string, tables ...*Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create star file: %w", err)
	}
	if err := WriteWithOptics(f, optics, tables...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
