package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementList_MarshalTagsKind(t *testing.T) {
	list := ElementList{
		&Heading{Level: 1, Text: "Hi"},
		&TwoColumn{
			Left:  ElementList{&Paragraph{Runs: []TextRun{{Text: "left"}}}},
			Right: ElementList{&Quote{Text: "right"}},
		},
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "heading", decoded[0]["kind"])
	assert.Equal(t, "two_column", decoded[1]["kind"])

	left, ok := decoded[1]["left"].([]any)
	require.True(t, ok)
	inner, ok := left[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "paragraph", inner["kind"])
}

func TestTextRun_ZeroStyleOmitted(t *testing.T) {
	data, err := json.Marshal(TextRun{Text: "plain"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"plain"}`, string(data))

	data, err = json.Marshal(TextRun{Text: "red", Style: InlineStyle{Color: "#ff0000"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"red","style":{"color":"#ff0000"}}`, string(data))
}

func TestParagraph_Text(t *testing.T) {
	p := &Paragraph{Runs: []TextRun{{Text: "a "}, {Text: "b"}}}
	assert.Equal(t, "a b", p.Text())
}

func TestVariables_InsertionOrder(t *testing.T) {
	var v Variables
	v.Set("zulu", "1")
	v.Set("alpha", "2")
	v.Set("zulu", "3")

	assert.Equal(t, []string{"zulu", "alpha"}, v.Names())
	assert.Equal(t, 2, v.Len())

	val, ok := v.Get("zulu")
	assert.True(t, ok)
	assert.Equal(t, "3", val)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"zulu":"3","alpha":"2"}`, string(data))
}

func TestVariables_EmptyMarshalsAsObject(t *testing.T) {
	var v Variables
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestParseSlideType(t *testing.T) {
	st, ok := ParseSlideType("timeline")
	assert.True(t, ok)
	assert.Equal(t, SlideTimeline, st)

	st, ok = ParseSlideType("banana")
	assert.False(t, ok)
	assert.Equal(t, SlideContent, st)
}
