package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrontmatter_FullBlock(t *testing.T) {
	src := `---
title: Launch
author: Sam
theme: dark
aspect_ratio: "4:3"
footer: Confidential
slide_numbers: false
logo: logo.png
colors:
  primary: "#102030"
  accent: "#abcdef"
variables:
  product: Widget
  version: "2.0"
---
# Body starts here
`
	cfg, rest, consumed, err := readFrontmatter(src)
	require.NoError(t, err)

	assert.Equal(t, "Launch", cfg.Title)
	assert.Equal(t, "Sam", cfg.Author)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "4:3", string(cfg.AspectRatio))
	assert.Equal(t, "Confidential", cfg.Footer)
	assert.False(t, cfg.SlideNumbers)
	assert.Equal(t, "logo.png", cfg.Logo)
	assert.Equal(t, "#102030", cfg.Colors.Primary)
	assert.Equal(t, "#abcdef", cfg.Colors.Accent)

	assert.Equal(t, 15, consumed)
	assert.Equal(t, "# Body starts here\n", rest)

	v, ok := cfg.Variables.Get("product")
	assert.True(t, ok)
	assert.Equal(t, "Widget", v)
	assert.Equal(t, []string{"product", "version"}, cfg.Variables.Names())
}

func TestReadFrontmatter_Absent(t *testing.T) {
	cfg, rest, consumed, err := readFrontmatter("# No metadata\n")
	require.NoError(t, err)
	assert.Equal(t, "Presentation", cfg.Title)
	assert.Equal(t, "# No metadata\n", rest)
	assert.Zero(t, consumed)
}

func TestReadFrontmatter_UnknownKeysTolerated(t *testing.T) {
	cfg, _, _, err := readFrontmatter("---\ntitle: T\nfuture_knob: 7\n---\nbody")
	require.NoError(t, err)
	assert.Equal(t, "T", cfg.Title)
}

func TestReadFrontmatter_BadYAML(t *testing.T) {
	_, _, _, err := readFrontmatter("---\ntitle: [unclosed\n---\nbody")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrMalformedFrontmatter))
}

func TestReadFrontmatter_NonScalarVariable(t *testing.T) {
	_, _, _, err := readFrontmatter("---\nvariables:\n  listy:\n    - a\n---\nbody")
	require.Error(t, err)

	ce, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrMalformedFrontmatter, ce.Kind)
	assert.Equal(t, "variables.listy", ce.Key)
}

func TestReadFrontmatter_UnknownColorRoleValidatedButDropped(t *testing.T) {
	cfg, _, _, err := readFrontmatter("---\ncolors:\n  tertiary: \"#123456\"\n---\nbody")
	require.NoError(t, err)
	assert.Empty(t, cfg.Colors.Primary)

	_, _, _, err = readFrontmatter("---\ncolors:\n  tertiary: nope\n---\nbody")
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrInvalidColorValue))
}
