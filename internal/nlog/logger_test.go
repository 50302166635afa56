package nlog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fis/nano-exporter/internal/nlog"
)

func TestEntryWritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := nlog.New(nlog.InfoLevel, &buf)

	l.Entry(nlog.InfoLevel, "scrape accepted").Field("remote", "127.0.0.1").Log()

	out := buf.String()
	assert.Contains(t, out, "scrape accepted")
	assert.Contains(t, out, "remote")
}

func TestLevelBelowThresholdIsSuppressed(t *testing.T) {
	var buf bytes.Buffer
	l := nlog.New(nlog.WarnLevel, &buf)

	l.Entry(nlog.DebugLevel, "should not appear").Log()

	assert.Empty(t, buf.String())
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, nlog.InfoLevel, nlog.ParseLevel("bogus"))
	assert.Equal(t, nlog.DebugLevel, nlog.ParseLevel("DEBUG"))
	assert.Equal(t, nlog.NilLevel, nlog.ParseLevel("off"))
}

func TestErrorAddOmittedWhenNil(t *testing.T) {
	var buf bytes.Buffer
	l := nlog.New(nlog.InfoLevel, &buf)
	l.Entry(nlog.InfoLevel, "clean stop").ErrorAdd(nil).Log()
	assert.NotContains(t, buf.String(), "error=")
}
