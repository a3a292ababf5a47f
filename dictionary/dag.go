package dictionary

import (
	"unicode/utf8"
)

// DAG lists, for every start position of a rune slice, the exclusive end
// positions of the candidate words starting there, in ascending order.
// DAG[i] always contains i+1.
type DAG [][]int

// View is a read-only handle passed to Dictionary.View callbacks.
type View struct {
	d *Dictionary
}

// Lookup returns the entry for word.
func (v View) Lookup(word string) (Entry, bool) {
	return v.d.lookup(word)
}

// Contains checks if a word exists in the dictionary.
func (v View) Contains(word string) bool {
	_, ok := v.d.lookup(word)
	return ok
}

// DAG builds the word graph of runes.
func (v View) DAG(runes []rune) DAG {
	return v.d.buildDAG(runes)
}

// buildDAG walks the trie from every position while the accumulated runes
// remain a valid prefix, recording each position where a word ends. A
// maximal ASCII letter/digit run also gets one edge spanning the whole run.
func (d *Dictionary) buildDAG(runes []rune) DAG {
	n := len(runes)
	dag := make(DAG, n)
	var buf [utf8.UTFMax]byte

	for i := 0; i < n; i++ {
		ends := []int{i + 1}
		id := 0
		for j := i; j < n; j++ {
			size := utf8.EncodeRune(buf[:], runes[j])
			next, err := d.trie.Jump(buf[:size], id)
			if err != nil {
				break
			}
			id = next
			if j == i {
				continue
			}
			if _, err := d.trie.Value(id); err == nil {
				ends = append(ends, j+1)
			}
		}

		if isAlphaNum(runes[i]) && (i == 0 || !isAlphaNum(runes[i-1])) {
			j := i
			for j < n && isAlphaNum(runes[j]) {
				j++
			}
			ends = insertSorted(ends, j)
		}
		dag[i] = ends
	}
	return dag
}

func insertSorted(ends []int, end int) []int {
	for k, e := range ends {
		if e == end {
			return ends
		}
		if e > end {
			ends = append(ends, 0)
			copy(ends[k+1:], ends[k:])
			ends[k] = end
			return ends
		}
	}
	return append(ends, end)
}

func isAlphaNum(r rune) bool {
	if r < 128 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	return false
}
