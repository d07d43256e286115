package nexuserr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNexusErrorWrapAndIs(t *testing.T) {
	cause := fmt.Errorf("dial failed")
	wrapped := Wrap(cause, ErrCodeInternal, "transport error")

	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, Is(wrapped, ErrCodeInternal))
	assert.False(t, Is(wrapped, ErrCodeSessionNotFound))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeUnknownNode, "unknown node").WithDetail("node", "gpu")
	assert.Equal(t, "gpu", err.Details["node"])
}

func TestConstructors(t *testing.T) {
	nf := SessionNotFound("api")
	assert.Equal(t, ErrCodeSessionNotFound, nf.Code)
	assert.Equal(t, "api", nf.Details["name"])

	amb := AmbiguousSession([]string{"local/api", "dev/api"})
	assert.Equal(t, ErrCodeAmbiguousSession, amb.Code)
	assert.Contains(t, amb.Error(), "local/api, dev/api")

	dup := DuplicateSession("api", "dev")
	assert.Equal(t, "Session 'api' already exists on dev.", dup.Message)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(SessionNotFound("api")))
	assert.Equal(t, 1, ExitCode(AmbiguousSession([]string{"a", "b"})))
	assert.Equal(t, 2, ExitCode(FormatParseError("bad|line", "expected 8 fields, got 2")))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("unrecognized")))
}
