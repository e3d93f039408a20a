//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package layout decides how a tagged sentence is laid out: which morphemes
// belong to one visual unit and whether a space follows that unit.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
)

// MalformedTokenError - a token with no morphemes; it is skipped and the pass continues
type MalformedTokenError struct {
	Index int
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("token %d has no morphemes", e.Index)
}

// quotes - the only state a pass carries: are we inside a span opened by an ambiguous quote?
type quotes struct {
	inside bool
}

// opening - does this token suppress the space after itself?
func (q *quotes) opening(t str.TaggedToken, punct bool) bool {
	if !punct {
		return false
	}
	switch {
	case slices.Contains(vv.OpeningPunct, t.Root):
		return true
	case slices.Contains(vv.AmbiguousPunct, t.Root):
		// odd occurrences open, even occurrences close
		q.inside = !q.inside
		return q.inside
	default:
		return false
	}
}

// Format - build one RenderDirective per well-formed token
//
// Malformed tokens are dropped and reported via the returned error (a join of
// *MalformedTokenError); the directives for everything else are always returned.
func Format(tokens []str.TaggedToken) ([]str.RenderDirective, error) {
	var problems []error
	wellformed := make([]str.TaggedToken, 0, len(tokens))
	for i, t := range tokens {
		if len(t.Morphemes) == 0 {
			problems = append(problems, &MalformedTokenError{Index: i})
			continue
		}
		wellformed = append(wellformed, t)
	}

	var q quotes
	directives := make([]str.RenderDirective, len(wellformed))

	for i, t := range wellformed {
		punct := IsPunctuation(t)
		open := q.opening(t, punct)

		mv := make([]str.MorphemeView, len(t.Morphemes))
		for j, m := range t.Morphemes {
			mv[j] = str.MorphemeView{Text: m.Text, Tag: m.Tag, Root: t.Root}
		}

		space := false
		if i+1 < len(wellformed) {
			space = !IsPunctuation(wellformed[i+1]) && !open
		}

		directives[i] = str.RenderDirective{
			Morphemes:     mv,
			TrailingSpace: space,
			Punctuation:   punct,
			Opening:       open,
		}
	}

	return directives, errors.Join(problems...)
}

// IsPunctuation - any morpheme tagged as punctuation makes the whole token punctuation
func IsPunctuation(t str.TaggedToken) bool {
	return t.HasTag(vv.PUNCTUATIONTAG)
}

// Malformed - the indices reported in an error returned by Format
func Malformed(err error) []int {
	if err == nil {
		return nil
	}
	var idx []int
	var mte *MalformedTokenError
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			if errors.As(e, &mte) {
				idx = append(idx, mte.Index)
			}
		}
		return idx
	}
	if errors.As(err, &mte) {
		idx = append(idx, mte.Index)
	}
	return idx
}
