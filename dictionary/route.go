package dictionary

import (
	"math"
)

// Step is the best continuation from one position: the log-probability of
// the rest of the run and the end of the word taken first.
type Step struct {
	Score float64
	End   int
}

// Route holds one Step per position plus a terminal step.
type Route []Step

// Route runs the max-probability search over dag, backward from the end.
func (v View) Route(runes []rune, dag DAG) Route {
	return v.d.route(runes, dag, "")
}

// Cut returns the max-probability segmentation of runes.
func (v View) Cut(runes []rune) []string {
	return v.Route(runes, v.DAG(runes)).Words(runes)
}

// Ends returns the exclusive end positions of the words on the best path.
func (r Route) Ends() []int {
	n := len(r) - 1
	var ends []int
	for i := 0; i < n; i = r[i].End {
		ends = append(ends, r[i].End)
	}
	return ends
}

// Words splits runes along the best path.
func (r Route) Words(runes []rune) []string {
	var words []string
	start := 0
	for _, end := range r.Ends() {
		words = append(words, string(runes[start:end]))
		start = end
	}
	return words
}

func (d *Dictionary) logTotal() float64 {
	return math.Log(float64(max(d.total, 1)))
}

// logFreq scores unknown words, zero-frequency entries and the excluded
// word as frequency 1.
func (d *Dictionary) logFreq(word, exclude string) float64 {
	if word == exclude {
		return 0
	}
	if e, ok := d.lookup(word); ok && e.Freq > 0 {
		return math.Log(float64(e.Freq))
	}
	return 0
}

// route keeps the earliest end on equal scores.
func (d *Dictionary) route(runes []rune, dag DAG, exclude string) Route {
	n := len(runes)
	logTotal := d.logTotal()
	route := make(Route, n+1)
	route[n] = Step{End: n}

	for i := n - 1; i >= 0; i-- {
		best := Step{Score: math.Inf(-1), End: i + 1}
		for _, end := range dag[i] {
			score := d.logFreq(string(runes[i:end]), exclude) - logTotal + route[end].Score
			if score > best.Score {
				best = Step{Score: score, End: end}
			}
		}
		route[i] = best
	}
	return route
}

// suggestFreq segments word without considering word itself as a single
// span and returns the frequency at which the single span wins.
func (d *Dictionary) suggestFreq(word string) int64 {
	runes := []rune(word)
	dag := d.buildDAG(runes)
	if n := len(runes); n > 1 {
		dag[0] = removeEnd(dag[0], n)
	}
	route := d.route(runes, dag, word)

	logTotal := d.logTotal()
	logFreq := 0.0
	start := 0
	for _, end := range route.Ends() {
		logFreq += d.logFreq(string(runes[start:end]), word) - logTotal
		start = end
	}

	freq := int64(math.Exp(logFreq+logTotal)) + 1
	if e, ok := d.lookup(word); ok && e.Freq > freq {
		freq = e.Freq
	}
	return freq
}

func removeEnd(ends []int, end int) []int {
	out := make([]int, 0, len(ends))
	for _, e := range ends {
		if e != end {
			out = append(out, e)
		}
	}
	return out
}
