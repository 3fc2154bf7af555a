package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/locator"
)

func TestRunEndToEnd(t *testing.T) {
	class3d := scenarioClass3D(t)
	relionDir := filepath.Dir(class3d)
	outdir := filepath.Join(t.TempDir(), "out")

	s, err := Run(Config{
		RelionDir: relionDir,
		OutDir:    outdir,
		Jobs:      []int{1, 2},
		Logger:    discardLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, s.Pairs)
	assert.Equal(t, 2, s.NonEmptyPairs)
	require.Len(t, s.Jobs, 2)
	assert.Equal(t, 2, s.Jobs[0].Classes)
	assert.Equal(t, 20, s.Jobs[0].Particles)

	for _, path := range []string{
		s.CountsPath,
		s.FractionsPath,
		s.FlowsPath,
		filepath.Join(outdir, PerClassDirName, "job001_class1.star"),
		filepath.Join(outdir, PerClassDirName, "job001_class2.star"),
		filepath.Join(outdir, PerClassDirName, "job002_class1.star"),
		filepath.Join(outdir, IntersectionsDirName, "job001_class1_vs_job002_class1.star"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestRunDeterministic(t *testing.T) {
	class3d := scenarioClass3D(t)
	relionDir := filepath.Dir(class3d)

	read := func(outdir string) map[string][]byte {
		_, err := Run(Config{
			RelionDir: relionDir,
			OutDir:    outdir,
			Jobs:      []int{1, 2},
			Logger:    discardLogger(),
		})
		require.NoError(t, err)
		out := map[string][]byte{}
		require.NoError(t, filepath.Walk(outdir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			rel, _ := filepath.Rel(outdir, path)
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out[rel] = content
			return nil
		}))
		return out
	}

	first := read(filepath.Join(t.TempDir(), "a"))
	second := read(filepath.Join(t.TempDir(), "b"))
	require.Equal(t, len(first), len(second))
	for rel, content := range first {
		assert.Equal(t, content, second[rel], rel)
	}
}

func TestAnalyzePicksHighestIteration(t *testing.T) {
	class3d := filepath.Join(t.TempDir(), "Class3D")
	writeJob(t, class3d, 1, "run_it003_data.star", false, classRows(1, img(1)))
	writeJob(t, class3d, 1, "run_it025_data.star", false, classRows(1, img(1), img(2)))
	writeJob(t, class3d, 2, "run_it010_data.star", false, classRows(1, img(2)))

	a, err := Analyze(Config{
		RelionDir: filepath.Dir(class3d),
		Jobs:      []int{1, 2},
		Logger:    discardLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, "run_it025_data.star", filepath.Base(a.Jobs[0].StarFile))
	assert.Len(t, a.Jobs[0].Particles.Rows, 2)
}

func TestAnalyzeNeedsTwoJobs(t *testing.T) {
	class3d := scenarioClass3D(t)
	_, err := Analyze(Config{
		RelionDir: filepath.Dir(class3d),
		Jobs:      []int{1},
		Logger:    discardLogger(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two jobs")
}

func TestAnalyzeMissingClass3D(t *testing.T) {
	_, err := Analyze(Config{
		RelionDir: t.TempDir(),
		Jobs:      []int{1, 2},
		Logger:    discardLogger(),
	})
	var nf *locator.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Error(), "Class3D")
}

func TestAnalyzeMissingJobIsFatal(t *testing.T) {
	class3d := scenarioClass3D(t)
	_, err := Analyze(Config{
		RelionDir: filepath.Dir(class3d),
		Jobs:      []int{1, 99},
		Logger:    discardLogger(),
	})
	var nf *locator.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, err.Error(), "job099")
}
