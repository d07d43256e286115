package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/nexus/nexuserr"
)

func TestHandleReturnsZeroForNil(t *testing.T) {
	h := NewErrorHandler(false)
	assert.Equal(t, 0, h.Handle(nil))
}

func TestHandleMapsUserErrorsToExitOne(t *testing.T) {
	h := NewErrorHandler(false)
	assert.Equal(t, 1, h.Handle(nexuserr.SessionNotFound("api")))
	assert.Equal(t, 1, h.Handle(nexuserr.UnknownNode("gpu")))
	assert.Equal(t, 1, h.Handle(nexuserr.DuplicateSession("api", "dev")))
}

func TestHandleMapsFormatParseErrorToExitTwo(t *testing.T) {
	h := NewErrorHandler(false)
	assert.Equal(t, 2, h.Handle(nexuserr.FormatParseError("bad|line", "expected 8 fields, got 2")))
}

func TestHandleMapsUnknownErrorToExitTwo(t *testing.T) {
	h := NewErrorHandler(false)
	assert.Equal(t, 2, h.Handle(assert.AnError))
}
