package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Output file names under the run's output directory.
const (
	CountsFileName    = "counts_matrix.csv"
	FractionsFileName = "fraction_matrix.csv"
)

// MatrixHeader is the long-form column contract of both matrix files.
var MatrixHeader = []string{"job1", "job2", "class1", "class2", "value"}

// FormatFraction renders a fraction with its shortest exact decimal
// representation, so repeated runs emit identical bytes.
func FormatFraction(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteMatrices writes the raw-count and fraction matrices in long form,
// one row per cross-job class pair including zero-overlap pairs. The
// result order is already deterministic (job input order, class ids
// ascending), so the files reproduce byte for byte on identical input.
func WriteMatrices(outdir string, results []IntersectionResult) (countsPath, fractionsPath string, err error) {
	countsPath = filepath.Join(outdir, CountsFileName)
	fractionsPath = filepath.Join(outdir, FractionsFileName)

	if err = writeMatrix(countsPath, results, func(r IntersectionResult) string {
		return strconv.Itoa(r.Count)
	}); err != nil {
		return "", "", err
	}
	if err = writeMatrix(fractionsPath, results, func(r IntersectionResult) string {
		return FormatFraction(r.Fraction)
	}); err != nil {
		return "", "", err
	}
	return countsPath, fractionsPath, nil
}

func writeMatrix(path string, results []IntersectionResult, value func(IntersectionResult) string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matrix file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(MatrixHeader); err != nil {
		f.Close()
		return err
	}
	for _, r := range results {
		row := []string{
			jobLabel(r.JobA),
			jobLabel(r.JobB),
			strconv.Itoa(r.ClassA),
			strconv.Itoa(r.ClassB),
			value(r),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
