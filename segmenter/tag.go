package segmenter

import (
	"github.com/teatak/fenci/dictionary"
	"github.com/teatak/fenci/util"
)

// DefaultTag is assigned when no other rule applies.
const DefaultTag = "n"

// Tag segments the text and assigns a part of speech to every word.
//
// A dictionary entry with a tag keeps that tag. Otherwise punctuation and
// whitespace get "x", numbers "m", Latin words "eng", words found by the HMM
// the tag of their last state, and everything else DefaultTag.
func (s *Segmenter) Tag(text string, modes ...Mode) ([]TaggedToken, error) {
	mode, err := s.mode(modes, false)
	if err != nil {
		return nil, err
	}

	tags := []TaggedToken{}
	err = s.Dict.View(func(v dictionary.View) error {
		for _, p := range s.cut(v, text, mode) {
			tags = append(tags, TaggedToken{Word: p.word, Tag: s.tagOf(v, p)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Segmenter) tagOf(v dictionary.View, p piece) string {
	if e, ok := v.Lookup(p.word); ok && e.Tag != "" {
		return e.Tag
	}
	switch {
	case util.IsPunctuation(p.word):
		return "x"
	case util.IsNumeral(p.word):
		return "m"
	case util.IsLatin(p.word):
		return "eng"
	}
	if p.state >= 0 && s.HMMModel != nil {
		if tag := s.HMMModel.Tag(p.state); tag != "" {
			return tag
		}
	}
	return DefaultTag
}
