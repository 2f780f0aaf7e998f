package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	configPath = ""
	scale = "small"
	corpusPath = ""
	queryPath = ""
	resultsDir = ""
	treeDepth = 0
	branching = 0
	debugMode = false
}

func TestLoadConfig_ScaleSuppliesPathDefaults(t *testing.T) {
	resetFlags()
	scale = "medium"

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("benchmark", "medium", "corpus.json"), cfg.Paths.Corpus)
	assert.Equal(t, filepath.Join("benchmark", "medium", "queries.json"), cfg.Paths.Queries)
	assert.Equal(t, filepath.Join("benchmark", "medium", "results"), cfg.Paths.Results)
}

func TestLoadConfig_PathFlagsOverrideScale(t *testing.T) {
	resetFlags()
	corpusPath = "custom/corpus.json"

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "custom/corpus.json", cfg.Paths.Corpus)
	assert.Equal(t, filepath.Join("benchmark", "small", "queries.json"), cfg.Paths.Queries)
}

func TestLoadConfig_RejectsUnknownScale(t *testing.T) {
	resetFlags()
	scale = "gigantic"

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_DepthAndBranchingOverrides(t *testing.T) {
	resetFlags()
	treeDepth = 3
	branching = 7

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Tree.MaxDepth)
	assert.Equal(t, 7, cfg.Tree.Branching)
}

func TestNewRootCmd_RegistersAllModes(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, mode := range []string{"sanity", "baselines", "hcr", "failfast", "full"} {
		assert.Contains(t, names, mode)
	}
}
