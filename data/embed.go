// Package data embeds the default dictionary, HMM model and stop words.
package data

import _ "embed"

// Dictionary is the base lexicon, one "word frequency tag" entry per line.
//
//go:embed dict.txt
var Dictionary []byte

// HMMModel holds the BMES start, transition and emission log-probabilities.
//
//go:embed hmm_model.txt
var HMMModel []byte

//go:embed stop_words.txt
var StopWords []byte
