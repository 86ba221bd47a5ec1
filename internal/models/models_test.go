package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalNormalizedType(t *testing.T) {
	assert.Equal(t, SignalComplete, Signal{Type: "sika:checkout:complete"}.NormalizedType())
	assert.Equal(t, SignalCancel, Signal{Type: " checkout:cancel "}.NormalizedType())
	assert.Equal(t, "checkout:resize", Signal{Type: "sika:checkout:resize"}.NormalizedType())
	assert.Equal(t, "other", Signal{Type: "other"}.NormalizedType())
}

func TestModes(t *testing.T) {
	for _, m := range []string{ModeRedirect, ModeModal, ModeInline, ModePopup} {
		assert.True(t, ValidMode(m), m)
	}
	assert.False(t, ValidMode("iframe"))
	assert.True(t, ClearsOnRedirect(ModeRedirect))
	assert.False(t, ClearsOnRedirect(ModeModal))
	assert.False(t, ClearsOnRedirect(ModePopup))
}
