package segmenter

import (
	"regexp"
	"strings"
	"unicode"
)

type textBlock struct {
	runes  []rune
	isWord bool
}

// splitTextToBlocks splits runes into alternating runs of word characters and
// everything else.
func splitTextToBlocks(runes []rune) []textBlock {
	var blocks []textBlock
	if len(runes) == 0 {
		return blocks
	}

	start := 0
	inWord := isWordChar(runes[0])
	for i, r := range runes {
		if currentIsWord := isWordChar(r); currentIsWord != inWord {
			blocks = append(blocks, textBlock{runes: runes[start:i], isWord: inWord})
			start = i
			inWord = currentIsWord
		}
	}
	return append(blocks, textBlock{runes: runes[start:], isWord: inWord})
}

// splitOther breaks a non-word block: "\r\n" and every other whitespace or
// punctuation character stand alone, runs of letters from other scripts stay
// together.
func splitOther(runes []rune) []string {
	var out []string
	start := -1
	flush := func(i int) {
		if start >= 0 {
			out = append(out, string(runes[start:i]))
			start = -1
		}
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\r' && i+1 < len(runes) && runes[i+1] == '\n':
			flush(i)
			out = append(out, "\r\n")
			i++
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if start < 0 {
				start = i
			}
		default:
			flush(i)
			out = append(out, string(r))
		}
	}
	flush(len(runes))
	return out
}

var reSkip = regexp.MustCompile(`[a-zA-Z0-9]+(?:\.\d+)?%?`)

// splitSkip keeps numbers and Latin words of a non-Han run whole and splits
// everything else into single characters.
func splitSkip(s string) []string {
	var out []string
	last := 0
	for _, loc := range reSkip.FindAllStringIndex(s, -1) {
		for _, r := range s[last:loc[0]] {
			out = append(out, string(r))
		}
		out = append(out, s[loc[0]:loc[1]])
		last = loc[1]
	}
	for _, r := range s[last:] {
		out = append(out, string(r))
	}
	return out
}

func isWordChar(r rune) bool {
	return isAlphaNum(r) || isHan(r) || strings.ContainsRune("+#&._%-", r)
}

func isAlphaNum(r rune) bool {
	if r < 128 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	return false
}

func isPureAlphaNum(runes []rune) bool {
	for _, r := range runes {
		if !isAlphaNum(r) {
			return false
		}
	}
	return true
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}
