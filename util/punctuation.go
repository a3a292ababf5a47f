package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// IsPunctuation checks if a string consists entirely of punctuation, special
// CJK symbols or whitespace.
func IsPunctuation(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isPunct(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isPunct(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return false
	}
	if unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return true
	}
	// CJK Symbols and Punctuation
	if r >= 0x3000 && r <= 0x303F {
		return true
	}
	// Full-width forms
	if r >= 0xFF00 && r <= 0xFFEF {
		return true
	}
	return false
}

// ContainsPunctuation checks if any part of the string contains punctuation or special symbols.
func ContainsPunctuation(s string) bool {
	for _, r := range s {
		if isPunct(r) {
			return true
		}
	}
	return false
}

const chineseNumerals = "〇零一二三四五六七八九十百千万亿两壹贰叁肆伍陆柒捌玖拾佰仟"

// IsNumeral reports whether s is a number: ASCII or full-width digits with an
// optional decimal part and percent sign, or a run of Chinese numerals.
func IsNumeral(s string) bool {
	s = Fold(s)
	if s == "" {
		return false
	}
	if strings.Trim(s, chineseNumerals) == "" {
		return true
	}

	s = strings.TrimSuffix(s, "%")
	intPart, frac, hasDot := strings.Cut(s, ".")
	if !isDigits(intPart) {
		return false
	}
	return !hasDot || isDigits(frac)
}

// IsLatin reports whether s is a Latin word: ASCII or full-width letters and
// digits, with at least one letter, optionally joined by "+#&._-".
func IsLatin(s string) bool {
	s = Fold(s)
	letter := false
	for _, r := range s {
		switch {
		case r < 128 && unicode.IsLetter(r):
			letter = true
		case r >= '0' && r <= '9':
		case strings.ContainsRune("+#&._-", r):
		default:
			return false
		}
	}
	return letter
}

// Fold maps full-width ASCII variants to their narrow forms.
func Fold(s string) string {
	return width.Fold.String(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
