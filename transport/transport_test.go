package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeResultSuccess(t *testing.T) {
	assert.True(t, NodeResult{Exit: 0}.Success())
	assert.False(t, NodeResult{Exit: 1}.Success())
}

func TestNodeResultString(t *testing.T) {
	ok := NodeResult{Node: "dev", Exit: 0}
	assert.Equal(t, "dev: ok", ok.String())

	failed := NodeResult{Node: "gpu", Exit: 124, Stderr: "connect timeout"}
	assert.Equal(t, "gpu: exit=124 connect timeout", failed.String())
}
