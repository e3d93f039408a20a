//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tagger

import (
	"testing"

	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsKeyOrder(t *testing.T) {
	// "z" sorts after "a": a map would lose the morpheme order
	body := []byte(`{"tokens": [{"zz": "Noun", "aa": "A3pl", "mm": "Loc"}, {".": "Punctuation"}]}`)
	tokens, err := Decode(body)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, "zz", tokens[0].Root)
	assert.Equal(t, []str.Morpheme{
		{Text: "zz", Tag: "Noun"},
		{Text: "aa", Tag: "A3pl"},
		{Text: "mm", Tag: "Loc"},
	}, tokens[0].Morphemes)
	assert.Equal(t, ".", tokens[1].Root)
}

func TestDecodeEmptyTokenListAndEmptyToken(t *testing.T) {
	tokens, err := Decode([]byte(`{"tokens": []}`))
	require.NoError(t, err)
	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)

	tokens, err = Decode([]byte(`{"tokens": [{}]}`))
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Empty(t, tokens[0].Morphemes)
	assert.Equal(t, "", tokens[0].Root)
}

func TestDecodeDuplicateKey(t *testing.T) {
	tokens, err := Decode([]byte(`{"tokens": [{"ev": "Noun", "de": "Loc", "ev": "Verb"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []str.Morpheme{{Text: "ev", Tag: "Verb"}, {Text: "de", Tag: "Loc"}}, tokens[0].Morphemes)
	assert.Equal(t, "ev", tokens[0].Root)
}

func TestDecodeSkipsOtherFields(t *testing.T) {
	body := []byte(`{"model": {"name": "zemberek"}, "tokens": [{"ev": "Noun"}], "elapsed": 0.12}`)
	tokens, err := Decode(body)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
}

func TestDecodeRejects(t *testing.T) {
	bad := map[string]string{
		"not json":       `tokens`,
		"array body":     `[{"ev": "Noun"}]`,
		"no tokens":      `{"words": []}`,
		"numeric tag":    `{"tokens": [{"ev": 3}]}`,
		"tokens is null": `{"tokens": null}`,
		"truncated":      `{"tokens": [{"ev": "Noun"}`,
	}
	for name, body := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadResponse)
			assert.ErrorIs(t, err, ErrTaggingUnavailable)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]byte(`{"tokens": [{"ev": "Noun"}, {}]}`)))
	assert.ErrorIs(t, Validate([]byte(`{"tokens": [{"ev": 1}]}`)), ErrBadResponse)
	assert.ErrorIs(t, Validate([]byte(`{"tokens": "ev"}`)), ErrBadResponse)
	assert.ErrorIs(t, Validate([]byte(`{}`)), ErrBadResponse)
	assert.ErrorIs(t, Validate([]byte(`{`)), ErrBadResponse)
}
