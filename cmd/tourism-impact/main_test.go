package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]string{
		"-arrivals", "arrivals.csv",
		"-pandemic-start", "2020-04",
		"-samples", "500",
		"-holidays",
	})
	require.Nil(t, err)

	assert.Equal(t, "arrivals.csv", cfg.arrivalsPath)
	assert.Equal(t, time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC), cfg.pandemicStart)
	assert.Equal(t, 500, cfg.samples)
	assert.True(t, cfg.holidays)
	assert.False(t, cfg.winsorize)
}

func TestParseConfigErrors(t *testing.T) {
	testData := map[string][]string{
		"missing arrivals": {},
		"bad month":        {"-arrivals", "arrivals.csv", "-validation-start", "March 2019"},
	}
	for name, args := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := parseConfig(args)
			assert.Error(t, err)
		})
	}
}
