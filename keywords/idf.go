package keywords

import (
	"bufio"
	"bytes"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/teatak/fenci/data"
)

// IDF maps words to inverse document frequencies. Words missing from the
// table get the median of all weights. An IDF is immutable once parsed.
type IDF struct {
	weights map[string]float64
	median  float64
}

// ParseIDF reads "word weight" lines. Blank lines are ignored, malformed
// lines are counted in skipped.
func ParseIDF(content []byte) (idf *IDF, skipped int, err error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	idf = &IDF{weights: make(map[string]float64)}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			skipped++
			continue
		}
		w, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			skipped++
			continue
		}
		idf.weights[parts[0]] = w
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	idf.setMedian()
	return idf, skipped, nil
}

// DeriveIDF weighs every word of a "word freq [tag]" lexicon by
// log(total/freq), so rare words weigh more. Lines without a positive
// frequency are ignored.
func DeriveIDF(lexicon []byte) (*IDF, error) {
	lexicon = bytes.TrimPrefix(lexicon, []byte("\ufeff"))
	freqs := make(map[string]int64)
	var total int64

	scanner := bufio.NewScanner(bytes.NewReader(lexicon))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		f, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || f <= 0 {
			continue
		}
		total += f - freqs[parts[0]]
		freqs[parts[0]] = f
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	idf := &IDF{weights: make(map[string]float64, len(freqs))}
	logTotal := math.Log(float64(total))
	for w, f := range freqs {
		idf.weights[w] = logTotal - math.Log(float64(f))
	}
	idf.setMedian()
	return idf, nil
}

var defaultIDF = sync.OnceValues(func() (*IDF, error) {
	return DeriveIDF(data.Dictionary)
})

// DefaultIDF returns the table derived from the embedded dictionary. The
// table is built once and shared.
func DefaultIDF() (*IDF, error) {
	return defaultIDF()
}

func (t *IDF) setMedian() {
	if len(t.weights) == 0 {
		return
	}
	values := make([]float64, 0, len(t.weights))
	for _, w := range t.weights {
		values = append(values, w)
	}
	slices.Sort(values)
	t.median = values[len(values)/2]
}

// Weight returns the weight of word, or the median for unknown words.
func (t *IDF) Weight(word string) float64 {
	if w, ok := t.weights[word]; ok {
		return w
	}
	return t.median
}

// Median returns the weight used for unknown words.
func (t *IDF) Median() float64 {
	return t.median
}

// Len returns the number of words in the table.
func (t *IDF) Len() int {
	return len(t.weights)
}
