package optimizer

import (
	"strings"

	"github.com/teatak/fenci/dictionary"
)

// Straddlers returns the dictionary words that cross a boundary of parts,
// the way a user split a phrase. For "南京市 长江大桥" that is "市长".
// Words are returned in order of start and then end position, once each.
func Straddlers(dict *dictionary.Dictionary, parts []string) ([]string, error) {
	if len(parts) < 2 {
		return nil, nil
	}

	runes := []rune(strings.Join(parts, ""))
	var boundaries []int
	offset := 0
	for _, p := range parts[:len(parts)-1] {
		offset += len([]rune(p))
		boundaries = append(boundaries, offset)
	}

	var found []string
	seen := make(map[string]bool)
	err := dict.View(func(v dictionary.View) error {
		n := len(runes)
		for start := 0; start < n; start++ {
			for end := start + 2; end <= n; end++ {
				if !straddles(boundaries, start, end) {
					continue
				}
				word := string(runes[start:end])
				if !seen[word] && v.Contains(word) {
					seen[word] = true
					found = append(found, word)
				}
			}
		}
		return nil
	})
	return found, err
}

func straddles(boundaries []int, start, end int) bool {
	for _, b := range boundaries {
		if start < b && b < end {
			return true
		}
	}
	return false
}
