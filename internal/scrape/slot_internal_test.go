//go:build linux

package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotWritableOnlyDuringWriteMetrics(t *testing.T) {
	var s slot
	s.fd = -1
	for _, st := range []State{StateInactive, StateRead, StateWriteHeaders, StateWriteError} {
		s.state = st
		assert.False(t, s.Writable(), st.String())
	}
	s.state = StateWriteMetrics
	assert.True(t, s.Writable())
}

func TestSlotResetAllocatesBufferOnce(t *testing.T) {
	var s slot
	s.fd = -1
	s.reset(-1, time.Now().Add(time.Second), 1024)
	first := s.buf
	assert.NotNil(t, first)

	s.outgoing = []byte("leftover")
	s.reset(-1, time.Now().Add(time.Second), 1024)
	assert.Same(t, first, s.buf)
	assert.Equal(t, 0, s.buf.Len())
	assert.Nil(t, s.outgoing)
}

func TestSlotCloseReleasesBufferUnlessRetained(t *testing.T) {
	var s slot
	s.fd = -1
	s.reset(-1, time.Now(), 1024)
	s.close()
	assert.Nil(t, s.buf)
	assert.Equal(t, StateInactive, s.state)
	assert.Equal(t, -1, s.fd)

	var retained slot
	retained.fd = -1
	retained.retainBuf = true
	retained.reset(-1, time.Now(), 1024)
	retained.close()
	assert.NotNil(t, retained.buf)
}

func TestSlotAdvanceOutTracksOffset(t *testing.T) {
	var s slot
	s.outgoing = []byte("hello world")
	assert.False(t, s.advanceOut(5))
	assert.Equal(t, []byte(" world"), s.remaining())
	assert.True(t, s.advanceOut(6))
	assert.Empty(t, s.remaining())
}

func TestStateStringCoversAllStates(t *testing.T) {
	for _, st := range []State{StateInactive, StateRead, StateWriteHeaders, StateWriteMetrics, StateWriteError} {
		assert.NotEqual(t, "UNKNOWN", st.String())
	}
	assert.Equal(t, "UNKNOWN", State(99).String())
}
