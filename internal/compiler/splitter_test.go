package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSeparator(t *testing.T) {
	assert.True(t, isSeparator("---"))
	assert.True(t, isSeparator("-----"))
	assert.True(t, isSeparator("---  "))
	assert.False(t, isSeparator("--"))
	assert.False(t, isSeparator("--- not"))
	assert.False(t, isSeparator("***"))
	assert.False(t, isSeparator(""))
}

func TestSplitSlides_OrderAndLines(t *testing.T) {
	body := "first\n---\nsecond\nmore\n----\nthird"
	segments := splitSlides(body)
	require.Len(t, segments, 3)

	assert.Equal(t, "first", segments[0].text)
	assert.Equal(t, 1, segments[0].line)
	assert.Equal(t, "second\nmore", segments[1].text)
	assert.Equal(t, 3, segments[1].line)
	assert.Equal(t, "third", segments[2].text)
	assert.Equal(t, 6, segments[2].line)
}

func TestSplitSlides_DropsBlankSegments(t *testing.T) {
	segments := splitSlides("\n---\n\n  \n---\nonly\n---\n")
	require.Len(t, segments, 1)
	assert.Equal(t, "only", segments[0].text)
}

func TestSplitSlides_NoSeparator(t *testing.T) {
	segments := splitSlides("single slide\nwith two lines")
	require.Len(t, segments, 1)
	assert.Equal(t, 1, segments[0].line)
}
