package hmm

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Trainer estimates a Model from segmented sentences by counting.
type Trainer struct {
	start [4]int64
	trans [4][4]int64
	emit  [4]map[rune]int64
	tags  [4]map[string]int64
}

// NewTrainer creates an empty trainer.
func NewTrainer() *Trainer {
	t := &Trainer{}
	for i := 0; i < 4; i++ {
		t.emit[i] = make(map[rune]int64)
		t.tags[i] = make(map[string]int64)
	}
	return t
}

// Add counts one sentence. Each word may carry a part of speech as "word/tag".
func (t *Trainer) Add(words []string) {
	prev := -1
	for _, w := range words {
		text, tag := splitTag(w)
		runes := []rune(text)
		for i, r := range runes {
			s := stateAt(i, len(runes))
			if prev < 0 {
				t.start[s]++
			} else {
				t.trans[prev][s]++
			}
			t.emit[s][r]++
			if tag != "" {
				t.tags[s][tag]++
			}
			prev = s
		}
	}
}

// AddWord counts the emissions of a word seen count times. Transitions are
// not counted, so a dictionary without word order can supply emissions.
func (t *Trainer) AddWord(word string, count int64) {
	runes := []rune(word)
	for i, r := range runes {
		t.emit[stateAt(i, len(runes))][r] += count
	}
}

// Model returns the log-probability estimates. Starts and transitions never
// seen stay at MinFloat.
func (t *Trainer) Model() *Model {
	m := NewModel()

	var starts int64
	for _, c := range t.start {
		starts += c
	}
	for s, c := range t.start {
		if c > 0 {
			m.Start[s] = math.Log(float64(c) / float64(starts))
		}
	}

	for from := 0; from < 4; from++ {
		var total int64
		for _, c := range t.trans[from] {
			total += c
		}
		for to, c := range t.trans[from] {
			if c > 0 {
				m.Trans[from][to] = math.Log(float64(c) / float64(total))
			}
		}
	}

	for s := 0; s < 4; s++ {
		var total int64
		for _, c := range t.emit[s] {
			total += c
		}
		for r, c := range t.emit[s] {
			m.Emit[s][r] = math.Log(float64(c) / float64(total))
		}

		var best int64
		for tag, c := range t.tags[s] {
			if c > best || (c == best && tag < m.Tags[s]) {
				best = c
				m.Tags[s] = tag
			}
		}
	}
	return m
}

// Save writes m in the format Load reads.
func (m *Model) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for s := 0; s < 4; s++ {
		fmt.Fprintf(bw, "S %s %s\n", StateStr(s), formatProb(m.Start[s]))
	}
	for from := 0; from < 4; from++ {
		for _, to := range nextStates[from] {
			if m.Trans[from][to] > MinFloat {
				fmt.Fprintf(bw, "T %s %s %s\n", StateStr(from), StateStr(to), formatProb(m.Trans[from][to]))
			}
		}
	}
	for s := 0; s < 4; s++ {
		if m.Tags[s] != "" {
			fmt.Fprintf(bw, "P %s %s\n", StateStr(s), m.Tags[s])
		}
	}
	for s := 0; s < 4; s++ {
		chars := make([]rune, 0, len(m.Emit[s]))
		for r := range m.Emit[s] {
			chars = append(chars, r)
		}
		sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
		for _, r := range chars {
			fmt.Fprintf(bw, "E %s %c %s\n", StateStr(s), r, formatProb(m.Emit[s][r]))
		}
	}
	return bw.Flush()
}

// nextStates lists the transitions a BMES sequence can make.
var nextStates = [4][]int{
	StateB: {StateE, StateM},
	StateE: {StateB, StateS},
	StateM: {StateE, StateM},
	StateS: {StateB, StateS},
}

func stateAt(i, n int) int {
	switch {
	case n == 1:
		return StateS
	case i == 0:
		return StateB
	case i == n-1:
		return StateE
	default:
		return StateM
	}
}

func splitTag(w string) (string, string) {
	if i := strings.LastIndexByte(w, '/'); i > 0 && i < len(w)-1 {
		return w[:i], w[i+1:]
	}
	return w, ""
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
