package keywords

// TFIDF returns the topK words of text by term frequency times inverse
// document frequency. allowedTags, when given, restricts candidates to those
// parts of speech.
func (e *Extractor) TFIDF(text string, topK int, allowedTags ...string) ([]Keyword, error) {
	words, err := e.candidates(text, allowedTags)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return []Keyword{}, nil
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	idf := e.IDF()
	total := float64(len(words))
	items := make([]ranked, len(order))
	for i, w := range order {
		tf := float64(counts[w]) / total
		items[i] = ranked{Keyword: Keyword{Word: w, Weight: tf * idf.Weight(w)}, first: i}
	}
	return top(items, topK), nil
}
