//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tagger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/e-gun/AyracGoServer/internal/str"
)

// the tagger answers with {"tokens": [{"ev": "Noun", "ler": "A3pl"}, ...]}; the order of the keys
// inside each object is the morpheme order and so map[string]string cannot be used to read it

const (
	TOKENSFIELD = "tokens"
)

// Decode - read the tagger's response body into TaggedTokens while keeping the key order of every token
func Decode(body []byte) ([]str.TaggedToken, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var tokens []str.TaggedToken
	found := false
	for dec.More() {
		k, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if k != TOKENSFIELD {
			// skip whatever else the tagger chose to send
			var skip json.RawMessage
			if err = dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
			}
			continue
		}
		if tokens, err = readTokenList(dec); err != nil {
			return nil, err
		}
		found = true
	}

	if !found {
		return nil, fmt.Errorf("%w: no %q field", ErrBadResponse, TOKENSFIELD)
	}
	return tokens, expectDelim(dec, '}')
}

func readTokenList(dec *json.Decoder) ([]str.TaggedToken, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	tokens := make([]str.TaggedToken, 0)
	for dec.More() {
		t, err := readToken(dec)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, expectDelim(dec, ']')
}

// readToken - one {"surface": "tag", ...} object; a repeated key keeps its first position and takes the last tag
func readToken(dec *json.Decoder) (str.TaggedToken, error) {
	var t str.TaggedToken
	if err := expectDelim(dec, '{'); err != nil {
		return t, err
	}

	seen := make(map[string]int)
	for dec.More() {
		k, err := readKey(dec)
		if err != nil {
			return t, err
		}
		v, err := dec.Token()
		if err != nil {
			return t, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
		tag, ok := v.(string)
		if !ok {
			return t, fmt.Errorf("%w: tag for %q is not a string", ErrBadResponse, k)
		}
		if at, dup := seen[k]; dup {
			t.Morphemes[at].Tag = tag
			continue
		}
		seen[k] = len(t.Morphemes)
		t.Morphemes = append(t.Morphemes, str.Morpheme{Text: k, Tag: tag})
	}

	if len(t.Morphemes) > 0 {
		t.Root = t.Morphemes[0].Text
	}
	return t, expectDelim(dec, '}')
}

func readKey(dec *json.Decoder) (string, error) {
	tk, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	k, ok := tk.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected an object key, got %v", ErrBadResponse, tk)
	}
	return k, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tk, err := dec.Token()
	if err == io.EOF {
		return fmt.Errorf("%w: truncated body", ErrBadResponse)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if d, ok := tk.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrBadResponse, want, tk)
	}
	return nil
}
