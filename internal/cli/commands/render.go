package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/analysis"
	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/state"
)

type matrixRow struct {
	Job1   string `json:"job1"`
	Job2   string `json:"job2"`
	Class1 int    `json:"class1"`
	Class2 int    `json:"class2"`
	Value  string `json:"value"`
}

func matrixRows(results []analysis.IntersectionResult, fractions bool) []matrixRow {
	rows := make([]matrixRow, 0, len(results))
	for _, r := range results {
		value := fmt.Sprintf("%d", r.Count)
		if fractions {
			value = analysis.FormatFraction(r.Fraction)
		}
		rows = append(rows, matrixRow{
			Job1:   fmt.Sprintf("job%03d", r.JobA),
			Job2:   fmt.Sprintf("job%03d", r.JobB),
			Class1: r.ClassA,
			Class2: r.ClassB,
			Value:  value,
		})
	}
	return rows
}

func renderMatrix(w io.Writer, results []analysis.IntersectionResult, fractions bool, format string) error {
	rows := matrixRows(results, fractions)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "csv":
		_, _ = fmt.Fprintln(w, strings.Join(analysis.MatrixHeader, ","))
		for _, r := range rows {
			_, _ = fmt.Fprintf(w, "%s,%s,%d,%d,%s\n", r.Job1, r.Job2, r.Class1, r.Class2, r.Value)
		}
		return nil
	case "", "table":
		return renderMatrixTable(w, rows)
	default:
		return fmt.Errorf("unknown output format %q (want table, csv or json)", format)
	}
}

func renderMatrixTable(w io.Writer, rows []matrixRow) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 pairs)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(analysis.MatrixHeader))
	for i, col := range analysis.MatrixHeader {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range rows {
		t.AppendRow(table.Row{r.Job1, r.Job2, r.Class1, r.Class2, r.Value})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d pairs)\n", len(rows))
	return nil
}

func renderRuns(w io.Writer, runs []*state.Run, format string) error {
	switch format {
	case "json":
		type runRow struct {
			ID          string `json:"id"`
			Jobs        string `json:"jobs"`
			OutDir      string `json:"out_dir"`
			Status      string `json:"status"`
			Pairs       int    `json:"pairs"`
			Error       string `json:"error,omitempty"`
			StartedAt   string `json:"started_at"`
			CompletedAt string `json:"completed_at,omitempty"`
		}
		rows := make([]runRow, 0, len(runs))
		for _, r := range runs {
			row := runRow{
				ID:        r.ID,
				Jobs:      r.Jobs,
				OutDir:    r.OutDir,
				Status:    string(r.Status),
				Pairs:     r.Pairs,
				Error:     r.Error,
				StartedAt: r.StartedAt.Format("2006-01-02 15:04:05"),
			}
			if r.CompletedAt != nil {
				row.CompletedAt = r.CompletedAt.Format("2006-01-02 15:04:05")
			}
			rows = append(rows, row)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "csv":
		_, _ = fmt.Fprintln(w, "id,jobs,status,pairs,started_at,out_dir")
		for _, r := range runs {
			_, _ = fmt.Fprintf(w, "%s,%s,%s,%d,%s,%s\n",
				r.ID, r.Jobs, r.Status, r.Pairs,
				r.StartedAt.Format("2006-01-02 15:04:05"), r.OutDir)
		}
		return nil
	case "", "table":
		if len(runs) == 0 {
			_, _ = fmt.Fprintln(w, "No recorded runs.")
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Jobs", "Status", "Pairs", "Started", "Output"})
		for _, r := range runs {
			t.AppendRow(table.Row{
				shortID(r.ID),
				r.Jobs,
				string(r.Status),
				r.Pairs,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.OutDir,
			})
		}
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, csv or json)", format)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
