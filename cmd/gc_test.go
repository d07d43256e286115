package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/nexus/session"
)

func TestShouldReapCleanExitUnderAutoReap(t *testing.T) {
	rec := session.Record{IsDead: true, HasExitStatus: true, ExitStatus: 0}
	assert.True(t, shouldReap(true, rec))
}

func TestShouldReapNonZeroExitAlwaysPrompts(t *testing.T) {
	rec := session.Record{IsDead: true, HasExitStatus: true, ExitStatus: 1}
	assert.False(t, shouldReap(true, rec))
}

func TestShouldReapDisabledAlwaysPrompts(t *testing.T) {
	rec := session.Record{IsDead: true, HasExitStatus: true, ExitStatus: 0}
	assert.False(t, shouldReap(false, rec))
}
