package hmm

import (
	"math"
)

// prevStates lists the states allowed before each state, in ascending order.
var prevStates = [4][]int{
	StateB: {StateE, StateS},
	StateE: {StateB, StateM},
	StateM: {StateB, StateM},
	StateS: {StateE, StateS},
}

// Decode performs Viterbi decoding to find the best state sequence.
// The sequence always ends in E or S, so every B is closed.
func (m *Model) Decode(runes []rune) []int {
	n := len(runes)
	if n == 0 {
		return []int{}
	}

	// dp[i][state] = max score ending at i in state
	dp := make([][4]float64, n)
	// path[i][state] = previous state that gave max score
	path := make([][4]int, n)

	for s := 0; s < 4; s++ {
		dp[0][s] = m.Start[s] + m.Emission(s, runes[0])
	}

	for i := 1; i < n; i++ {
		for curr := 0; curr < 4; curr++ {
			emission := m.Emission(curr, runes[i])
			maxScore := math.Inf(-1)
			bestPrev := prevStates[curr][0]
			// on equal scores the later state wins
			for _, prev := range prevStates[curr] {
				score := dp[i-1][prev] + m.Trans[prev][curr] + emission
				if score >= maxScore {
					maxScore = score
					bestPrev = prev
				}
			}
			dp[i][curr] = maxScore
			path[i][curr] = bestPrev
		}
	}

	bestEnd := StateE
	if dp[n-1][StateS] >= dp[n-1][StateE] {
		bestEnd = StateS
	}

	states := make([]int, n)
	states[n-1] = bestEnd
	for i := n - 1; i > 0; i-- {
		states[i-1] = path[i][states[i]]
	}
	return states
}

// Word is a span found by the model, with the state of its last character.
type Word struct {
	Text  string
	State int
}

// Cut groups decoded states into words: B..E runs and single S characters.
func (m *Model) Cut(runes []rune) []Word {
	states := m.Decode(runes)
	var words []Word
	begin := 0
	for i, s := range states {
		switch s {
		case StateB:
			begin = i
		case StateE:
			words = append(words, Word{Text: string(runes[begin : i+1]), State: StateE})
			begin = i + 1
		case StateS:
			words = append(words, Word{Text: string(runes[i]), State: StateS})
			begin = i + 1
		}
	}
	if begin < len(runes) {
		words = append(words, Word{Text: string(runes[begin:]), State: states[len(states)-1]})
	}
	return words
}

// Tag returns the part of speech for a word ending in state.
func (m *Model) Tag(state int) string {
	if state < 0 || state > 3 {
		return ""
	}
	return m.Tags[state]
}
