package keywords

import (
	"math"
	"slices"
)

const (
	textRankWindow     = 5
	textRankDamping    = 0.85
	textRankIterations = 10
	textRankEpsilon    = 1e-6
)

// graph is an undirected co-occurrence graph over distinct words.
type graph struct {
	words []string
	// edges[i][j] counts how often words i and j fall in one window
	edges []map[int]float64
}

func newGraph(seq []string) *graph {
	g := &graph{}
	index := make(map[string]int)
	ids := make([]int, len(seq))
	for i, w := range seq {
		id, ok := index[w]
		if !ok {
			id = len(g.words)
			index[w] = id
			g.words = append(g.words, w)
			g.edges = append(g.edges, make(map[int]float64))
		}
		ids[i] = id
	}

	for i := range ids {
		for j := i + 1; j < i+textRankWindow && j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if a == b {
				continue
			}
			g.edges[a][b]++
			g.edges[b][a]++
		}
	}
	return g
}

// rank runs weighted PageRank and returns one score per word.
func (g *graph) rank() []float64 {
	n := len(g.words)
	out := make([]float64, n)
	neighbors := make([][]int, n)
	for i, edges := range g.edges {
		for j, w := range edges {
			out[i] += w
			neighbors[i] = append(neighbors[i], j)
		}
		slices.Sort(neighbors[i])
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < textRankIterations; iter++ {
		delta := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, j := range neighbors[i] {
				if out[j] > 0 {
					sum += g.edges[i][j] / out[j] * scores[j]
				}
			}
			next[i] = (1 - textRankDamping) + textRankDamping*sum
			delta = math.Max(delta, math.Abs(next[i]-scores[i]))
		}
		scores, next = next, scores
		if delta < textRankEpsilon {
			break
		}
	}
	return scores
}

// TextRank returns the topK words of text by their rank in the co-occurrence
// graph of candidate words. allowedTags, when given, restricts candidates to
// those parts of speech.
func (e *Extractor) TextRank(text string, topK int, allowedTags ...string) ([]Keyword, error) {
	words, err := e.candidates(text, allowedTags)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return []Keyword{}, nil
	}

	g := newGraph(words)
	scores := g.rank()

	lo, hi := slices.Min(scores), slices.Max(scores)
	items := make([]ranked, len(scores))
	for i, s := range scores {
		items[i] = ranked{
			Keyword: Keyword{Word: g.words[i], Weight: (s - lo/10) / (hi - lo/10)},
			first:   i,
		}
	}
	return top(items, topK), nil
}
