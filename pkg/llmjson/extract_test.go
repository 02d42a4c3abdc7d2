package llmjson

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string           `json:"name"`
	Score  *float64         `json:"score"`
	Tags   []string         `json:"tags"`
	Nested *struct{ A int } `json:"nested"`
}

func TestExtract_RecoversObjectFromSurroundingText(t *testing.T) {
	object := `{"name":"Viral Fever","score":0.8,"tags":["a","b"],"nested":{"A":1}}`

	wrappers := []struct {
		name   string
		prefix string
		suffix string
	}{
		{"bare", "", ""},
		{"prose", "Sure! Here is the analysis: ", " Let me know if you need more."},
		{"markdown fence", "```json\n", "\n```"},
		{"newlines", "\n\n", "\n"},
		{"unicode prefix", "नमस्ते 🙏 ", ""},
	}

	for _, tt := range wrappers {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.prefix + object + tt.suffix)
			require.NoError(t, err)

			var want, have map[string]any
			require.NoError(t, json.Unmarshal([]byte(object), &want))
			require.NoError(t, json.Unmarshal([]byte(got), &have))
			assert.Equal(t, want, have)
		})
	}
}

func TestExtract_NoObject(t *testing.T) {
	inputs := []string{
		"",
		"I cannot help with that.",
		"only an opening { brace",
		"only a closing } brace",
		"} reversed {",
	}

	for _, in := range inputs {
		_, err := Extract(in)
		assert.ErrorIs(t, err, ErrNoJSONObject, "input %q", in)
	}
}

func TestExtract_Malformed(t *testing.T) {
	raw := `Result: {"name": "unterminated}`

	_, err := Extract(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedJSON)
	assert.False(t, errors.Is(err, ErrNoJSONObject))

	snippet, ok := Snippet(err)
	require.True(t, ok)
	assert.Equal(t, `{"name": "unterminated}`, snippet)
}

func TestExtract_TwoObjectsAreNotSilentlyMerged(t *testing.T) {
	_, err := Extract(`{"a":1} and also {"b":2}`)
	assert.ErrorIs(t, err, ErrMalformedJSON)
}

func TestExtract_SnippetIsTruncated(t *testing.T) {
	raw := "{" + strings.Repeat("é", 400) + "}"

	_, err := Extract(raw)
	require.Error(t, err)

	snippet, ok := Snippet(err)
	require.True(t, ok)
	assert.LessOrEqual(t, len(snippet), snippetLimit)
	assert.True(t, strings.HasPrefix(raw, snippet))
	assert.True(t, isRuneStart(raw[len(snippet)]))
}

func TestDecode(t *testing.T) {
	got, err := Decode[sample]("Here you go:\n" + `{"name":"Cold","extra":true}` + "\nThanks")
	require.NoError(t, err)
	assert.Equal(t, "Cold", got.Name)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Nested)
}

func TestDecode_TypeMismatchLeavesFieldZero(t *testing.T) {
	got, err := Decode[sample](`{"name":"Cold","tags":"not-a-list","score":"0.8"}`)
	require.NoError(t, err)
	assert.Equal(t, "Cold", got.Name)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Score)
}

func TestDecodeObject_KeepsObjectAsWritten(t *testing.T) {
	body := `{"name":"Cold","tags":"not-a-list","extra":{"kept":true}}`

	got, object, err := DecodeObject[sample]("```json\n" + body + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Cold", got.Name)
	assert.JSONEq(t, body, string(object))
}

var errStrict = errors.New("strict field rejected")

type strictField string

func (s *strictField) UnmarshalJSON([]byte) error {
	return errStrict
}

func TestDecode_FieldDecoderErrorsPropagate(t *testing.T) {
	type withStrict struct {
		Level strictField `json:"level"`
	}

	_, err := Decode[withStrict](`{"level":"whatever"}`)
	assert.ErrorIs(t, err, errStrict)
	assert.False(t, errors.Is(err, ErrMalformedJSON))
}

func TestDecode_NoObject(t *testing.T) {
	got, err := Decode[sample]("plain text, no braces")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNoJSONObject)
}
