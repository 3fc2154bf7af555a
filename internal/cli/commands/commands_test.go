package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/analysis"
)

func TestNewRunCommand(t *testing.T) {
	cmd := NewRunCommand()

	assert.Equal(t, "run [jobs...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"jobs", "skip-stars", "per-class-optics", "flow-weight", "no-history"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	assert.NotEmpty(t, cmd.Aliases, "run command should have aliases")
	assert.Equal(t, "analyze", cmd.Aliases[0])
}

func TestNewSplitCommand(t *testing.T) {
	cmd := NewSplitCommand()

	assert.Equal(t, "split [jobs...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"jobs", "with-optics"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewMatrixCommand(t *testing.T) {
	cmd := NewMatrixCommand()

	assert.Equal(t, "matrix [jobs...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"jobs", "fractions", "format", "write"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewLocateCommand(t *testing.T) {
	cmd := NewLocateCommand()

	assert.Equal(t, "locate [jobs...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("jobs"))
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"limit", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "2026-01-01", "abc1234")

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	out := buf.String()
	assert.Contains(t, out, "reciprocal v1.2.3")
	assert.Contains(t, out, "2026-01-01")
	assert.Contains(t, out, "abc1234")
}

func TestParseJobs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		flag     string
		expected []int
		wantErr  bool
	}{
		{name: "positional args", args: []string{"85", "86"}, expected: []int{85, 86}},
		{name: "comma flag", flag: "85,86", expected: []int{85, 86}},
		{name: "comma positional", args: []string{"85,86,87"}, expected: []int{85, 86, 87}},
		{name: "job prefix", args: []string{"job085", "job086"}, expected: []int{85, 86}},
		{name: "args and flag combined", args: []string{"85"}, flag: "86", expected: []int{85, 86}},
		{name: "empty", wantErr: true},
		{name: "not a number", args: []string{"eighty"}, wantErr: true},
		{name: "negative", args: []string{"-5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := parseJobs(tt.args, tt.flag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, jobs)
		})
	}
}

func TestJobLabels(t *testing.T) {
	assert.Equal(t, "job001,job085", jobLabels([]int{1, 85}))
}

func TestRenderMatrixFormats(t *testing.T) {
	results := []analysis.IntersectionResult{
		{JobA: 1, JobB: 2, ClassA: 1, ClassB: 1, Count: 3, Fraction: 0.3},
		{JobA: 1, JobB: 2, ClassA: 2, ClassB: 1, Count: 0, Fraction: 0},
	}

	t.Run("csv counts", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderMatrix(&buf, results, false, "csv"))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "job1,job2,class1,class2,value", lines[0])
		assert.Equal(t, "job001,job002,1,1,3", lines[1])
		assert.Equal(t, "job001,job002,2,1,0", lines[2])
	})

	t.Run("csv fractions", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderMatrix(&buf, results, true, "csv"))
		assert.Contains(t, buf.String(), "job001,job002,1,1,0.3")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderMatrix(&buf, results, false, "table"))
		assert.Contains(t, buf.String(), "job001")
		assert.Contains(t, buf.String(), "(2 pairs)")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderMatrix(&buf, results, false, "json"))
		assert.Contains(t, buf.String(), `"job1": "job001"`)
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, renderMatrix(&buf, nil, false, "table"))
		assert.Contains(t, buf.String(), "(0 pairs)")
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, renderMatrix(&buf, results, false, "yaml"))
	})
}
