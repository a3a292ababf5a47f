package engine

import (
	"strconv"
	"strings"

	"github.com/teatak/fenci/keywords"
	"github.com/teatak/fenci/segmenter"
)

// Row and column separators of the plain output format.
const (
	RowSeparator = " "
	ColSeparator = ","
)

// FormatWords joins words with RowSeparator.
func FormatWords(words []string) string {
	return strings.Join(words, RowSeparator)
}

// FormatTokens renders tokens as "word,start,end" rows.
func FormatTokens(tokens []segmenter.Token) string {
	rows := make([]string, len(tokens))
	for i, t := range tokens {
		rows[i] = t.Word + ColSeparator + strconv.Itoa(t.Start) + ColSeparator + strconv.Itoa(t.End)
	}
	return strings.Join(rows, RowSeparator)
}

// FormatTags renders tagged tokens as "word,tag" rows.
func FormatTags(tags []segmenter.TaggedToken) string {
	rows := make([]string, len(tags))
	for i, t := range tags {
		rows[i] = t.Word + ColSeparator + t.Tag
	}
	return strings.Join(rows, RowSeparator)
}

// FormatKeywords renders keywords as "word,weight" rows.
func FormatKeywords(kws []keywords.Keyword) string {
	rows := make([]string, len(kws))
	for i, k := range kws {
		rows[i] = k.Word + ColSeparator + strconv.FormatFloat(k.Weight, 'f', -1, 64)
	}
	return strings.Join(rows, RowSeparator)
}
