package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Randomizer = "bag"
	cfg.Game.Seed = 7

	report, err := run(cfg, 100*time.Millisecond)
	require.NoError(t, err)

	assert.Positive(t, report.TotalUpdates)
	assert.Positive(t, report.Pieces)
	assert.Equal(t, time.Duration(report.TotalUpdates)*cfg.Loop.PollInterval, report.SimulatedTime)
	require.Len(t, report.Systems, 2)
	assert.Equal(t, "GravitySystem", report.Systems[0].Name)

	var text bytes.Buffer
	require.NoError(t, report.Generate(&text))
	assert.Contains(t, text.String(), "# Blockfall Stress Test Report")
	assert.Contains(t, text.String(), "**Randomizer:** bag (seed 7)")
	assert.Contains(t, text.String(), "**GravitySystem:**")

	var out bytes.Buffer
	require.NoError(t, report.GenerateYAML(&out))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "bag", decoded["randomizer"])
	assert.EqualValues(t, report.Pieces, decoded["pieces"])
	assert.NotContains(t, decoded, "mem_stats_start")
}
