package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FlowsFileName is the flow-input file consumed by the external sankey
// plotting script.
const FlowsFileName = "pysankey_input.csv"

// FlowWeight selects which value the flow table carries.
type FlowWeight string

// Supported flow weights.
const (
	FlowWeightCount    FlowWeight = "count"
	FlowWeightFraction FlowWeight = "fraction"
)

// WriteFlows writes one row per cross-job class transition with source and
// target labels and a weight. Pairs are restricted to jobA < jobB so each
// undirected transition appears exactly once, matching the plotting
// collaborator's contract.
func WriteFlows(outdir string, results []IntersectionResult, weight FlowWeight) (string, error) {
	if weight == "" {
		weight = FlowWeightCount
	}
	if weight != FlowWeightCount && weight != FlowWeightFraction {
		return "", fmt.Errorf("unknown flow weight %q", weight)
	}

	path := filepath.Join(outdir, FlowsFileName)
	if err := os.MkdirAll(outdir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create flow file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "jobANo_class", "jobBNo_class", "#particles"}); err != nil {
		f.Close()
		return "", err
	}
	id := 0
	for _, r := range results {
		if r.JobA >= r.JobB {
			continue
		}
		var v string
		if weight == FlowWeightFraction {
			v = FormatFraction(r.Fraction)
		} else {
			v = strconv.Itoa(r.Count)
		}
		row := []string{strconv.Itoa(id), r.PairLabelA(), r.PairLabelB(), v}
		if err := w.Write(row); err != nil {
			f.Close()
			return "", err
		}
		id++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
