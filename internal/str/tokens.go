//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

//
// TAGGER OUTPUT
//

// Morpheme - one surface string and the tag the tagger gave it
type Morpheme struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// TaggedToken - a word or punctuation unit; Root is the first morpheme and labels the whole token
type TaggedToken struct {
	Root      string     `json:"root"`
	Morphemes []Morpheme `json:"morphemes"`
}

// Tags - every tag of the token in morpheme order
func (t TaggedToken) Tags() []string {
	tt := make([]string, len(t.Morphemes))
	for i, m := range t.Morphemes {
		tt[i] = m.Tag
	}
	return tt
}

// HasTag - does any morpheme carry this tag?
func (t TaggedToken) HasTag(tag string) bool {
	for _, m := range t.Morphemes {
		if m.Tag == tag {
			return true
		}
	}
	return false
}

//
// LAYOUT OUTPUT
//

// MorphemeView - what the renderer needs to show and label a morpheme
type MorphemeView struct {
	Text string `json:"morpheme"`
	Tag  string `json:"tag"`
	Root string `json:"root"`
}

// RenderDirective - one visual unit per well-formed TaggedToken
type RenderDirective struct {
	Morphemes     []MorphemeView `json:"morphemes"`
	TrailingSpace bool           `json:"trailingspace"`
	Punctuation   bool           `json:"punctuation"`
	Opening       bool           `json:"opening"`
}
