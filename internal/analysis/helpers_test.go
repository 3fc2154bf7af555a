package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// starContent builds a minimal two-block result file in the shape RELION
// writes: optional optics, then particles with identity-key and class
// columns.
func starContent(withOptics bool, rows [][]string) string {
	var b strings.Builder
	b.WriteString("# version 50001\n\n")
	if withOptics {
		b.WriteString("data_optics\n\nloop_\n")
		b.WriteString("_rlnOpticsGroupName #1\n_rlnOpticsGroup #2\n")
		b.WriteString("opticsGroup1 1\n\n")
	}
	b.WriteString("data_particles\n\nloop_\n")
	b.WriteString("_rlnImageName #1\n_rlnClassNumber #2\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r, " ") + "\n")
	}
	return b.String()
}

// writeJob creates Class3D/job<NNN>/<filename> under class3d.
func writeJob(t *testing.T, class3d string, job int, filename string, withOptics bool, rows [][]string) {
	t.Helper()
	dir := filepath.Join(class3d, fmt.Sprintf("job%03d", job))
	require.NoError(t, os.MkdirAll(dir, 0o750))
	content := starContent(withOptics, rows)
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o600))
}

// classRows assigns every key to the same class.
func classRows(class int, keys ...string) [][]string {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, strconv.Itoa(class)})
	}
	return rows
}

// imgSeq generates img<NNN>@stack.mrcs identity keys for [from, to].
func imgSeq(from, to int) []string {
	var keys []string
	for i := from; i <= to; i++ {
		keys = append(keys, fmt.Sprintf("%06d@stack.mrcs", i))
	}
	return keys
}

func img(i int) string { return fmt.Sprintf("%06d@stack.mrcs", i) }

// scenarioClass3D builds the two-job fixture from the test plan: job 1 has
// classes 1 and 2 with ten particles each, job 2 has one class of eight
// particles, three of which are shared with job 1 class 1.
func scenarioClass3D(t *testing.T) string {
	t.Helper()
	class3d := filepath.Join(t.TempDir(), "Class3D")

	job1 := append(classRows(1, imgSeq(1, 10)...), classRows(2, imgSeq(101, 110)...)...)
	writeJob(t, class3d, 1, "run_it025_data.star", true, job1)

	job2Keys := append([]string{img(3), img(4), img(5)}, imgSeq(11, 15)...)
	writeJob(t, class3d, 2, "run_it020_data.star", true, classRows(1, job2Keys...))

	return class3d
}

func loadScenarioPartitions(t *testing.T, class3d string) []*ClassPartition {
	t.Helper()
	var parts []*ClassPartition
	for _, n := range []int{1, 2} {
		job, err := LoadJob(class3d, n, DefaultImageColumn, DefaultClassColumn)
		require.NoError(t, err)
		part, err := Partition(job)
		require.NoError(t, err)
		parts = append(parts, part)
	}
	return parts
}
