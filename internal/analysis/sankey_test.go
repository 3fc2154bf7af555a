package analysis

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFlowsCounts(t *testing.T) {
	parts := loadScenarioPartitions(t, scenarioClass3D(t))
	results := Intersections(parts)

	path, err := WriteFlows(t.TempDir(), results, FlowWeightCount)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, "id,jobANo_class,jobBNo_class,#particles", lines[0])

	// Only jobA < jobB transitions, so 2 of the 4 pairs; ids sequential.
	require.Len(t, lines, 3)
	assert.Equal(t, "0,job001_class1,job002_class1,3", lines[1])
	assert.Equal(t, "1,job001_class2,job002_class1,0", lines[2])
}

func TestWriteFlowsFractionWeight(t *testing.T) {
	parts := loadScenarioPartitions(t, scenarioClass3D(t))
	results := Intersections(parts)

	path, err := WriteFlows(t.TempDir(), results, FlowWeightFraction)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "0,job001_class1,job002_class1,0.3\n")
}

func TestWriteFlowsUnknownWeight(t *testing.T) {
	_, err := WriteFlows(t.TempDir(), nil, FlowWeight("median"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "median")
}
