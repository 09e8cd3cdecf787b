package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := Input("events must not be negative")
	assert.Equal(t, "[INPUT_ERROR] events must not be negative", err.Error())

	wrapped := Parsing("schedule.hcl", fmt.Errorf("unexpected token"))
	assert.Equal(t, "[PARSING_ERROR] schedule.hcl: unexpected token", wrapped.Error())
}

func TestIsTypeThroughWrapping(t *testing.T) {
	inner := Schedule("tier B does not start where tier A ends")
	outer := Wrap(TypeConfig, "loading schedule", inner)
	viaFmt := fmt.Errorf("startup: %w", outer)

	assert.True(t, IsType(viaFmt, TypeConfig))
	assert.True(t, IsType(viaFmt, TypeSchedule))
	assert.False(t, IsType(viaFmt, TypeInput))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeInput))
	assert.False(t, IsType(nil, TypeInput))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TypeInput, TypeOf(fmt.Errorf("x: %w", Input("bad"))))
	assert.Equal(t, TypeInternal, TypeOf(fmt.Errorf("plain")))
}

func TestWithContext(t *testing.T) {
	err := Input("bad events").WithContext("events", "-1")
	assert.Equal(t, "-1", err.Context["events"])
}
