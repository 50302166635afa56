package bbuf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fis/nano-exporter/pkg/bbuf"
)

func TestNewClampsInitialToMax(t *testing.T) {
	b := bbuf.New(1024, 16)
	assert.Equal(t, 16, b.Cap())
	assert.Equal(t, 16, b.MaxCap())
}

func TestAppendGrowsByDoubling(t *testing.T) {
	b := bbuf.New(4, 64)
	b.AppendString("hello")
	require.Equal(t, 5, b.Len())
	assert.True(t, b.Cap() >= 5)
	assert.True(t, b.Cap() <= 64)
}

func TestAppendDropsSilentlyPastMax(t *testing.T) {
	b := bbuf.New(8, 8)
	b.AppendString("12345678")
	require.Equal(t, 8, b.Len())

	// This append cannot fit even after growth: it is dropped, not partial.
	b.AppendString("9")
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, "12345678", string(b.Bytes()))
}

func TestAppendNeverPartiallyWrites(t *testing.T) {
	b := bbuf.New(4, 4)
	b.AppendString("ok")
	b.AppendString("toolong-data")
	assert.Equal(t, "ok", string(b.Bytes()))
}

func TestResetKeepsCapacity(t *testing.T) {
	b := bbuf.New(4, 64)
	b.AppendString("abcdefgh")
	c := b.Cap()
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, c, b.Cap())
}

func TestAppendFormat(t *testing.T) {
	b := bbuf.New(16, 128)
	b.AppendFormat("%s=%.2f\n", "x", 3.14159)
	assert.Equal(t, "x=3.14\n", string(b.Bytes()))
}

func TestCompareShortlex(t *testing.T) {
	short := bbuf.New(8, 8)
	short.AppendString("ab")

	long := bbuf.New(8, 8)
	long.AppendString("abc")

	assert.Equal(t, -1, short.Compare(long))
	assert.Equal(t, 1, long.Compare(short))

	a := bbuf.New(8, 8)
	a.AppendString("aba")
	c := bbuf.New(8, 8)
	c.AppendString("abb")
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))

	eq1 := bbuf.New(8, 8)
	eq1.AppendString("xyz")
	eq2 := bbuf.New(8, 8)
	eq2.AppendString("xyz")
	assert.Equal(t, 0, eq1.Compare(eq2))
}

func TestAppendByte(t *testing.T) {
	b := bbuf.New(2, 2)
	b.AppendByte('a')
	b.AppendByte('b')
	b.AppendByte('c') // dropped: buffer full
	assert.Equal(t, "ab", string(b.Bytes()))
}

func TestLargeGrowthStaysWithinMax(t *testing.T) {
	b := bbuf.New(1, 1<<16)
	b.AppendString(strings.Repeat("x", 1<<15))
	assert.Equal(t, 1<<15, b.Len())
	assert.True(t, b.Cap() <= 1<<16)
}
