package engine

import (
	"bytes"
	"fmt"

	"github.com/teatak/fenci/config"
	"github.com/teatak/fenci/data"
	"github.com/teatak/fenci/hmm"
	"github.com/teatak/fenci/keywords"
	"github.com/teatak/fenci/util"
)

// FromConfig builds an engine from cfg: the base dictionary, each extra
// dictionary in order, the HMM model, the IDF table and the stop words.
// Empty paths select the embedded resources, except that an empty IDF path
// derives the weights from the base dictionary.
func FromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	content, err := util.ReadResourceOr(cfg.HMM.Model, data.HMMModel)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	model := hmm.NewModel()
	if err := model.Load(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("engine: load HMM model: %w", err)
	}

	base, err := util.ReadResourceOr(cfg.Dictionary.Base, data.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	// without an IDF table the weights come from the base dictionary
	var idf *keywords.IDF
	switch {
	case cfg.Keywords.IDF != "":
		content, err = util.ReadResource(cfg.Keywords.IDF)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		idf, _, err = keywords.ParseIDF(content)
	case cfg.Dictionary.Base != "":
		idf, err = keywords.DeriveIDF(base)
	default:
		idf, err = keywords.DefaultIDF()
	}
	if err != nil {
		return nil, fmt.Errorf("engine: load IDF: %w", err)
	}

	content, err = util.ReadResourceOr(cfg.Keywords.StopWords, data.StopWords)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	opts = append([]Option{
		WithHMMModel(model),
		WithIDF(idf),
		WithStopWords(keywords.NewStopWords(content)),
		WithCacheSize(cfg.HMM.CacheSize),
	}, opts...)
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}

	if err := e.LoadBaseDictionary(base); err != nil {
		return nil, err
	}
	for _, path := range cfg.Dictionary.Extra {
		content, err := util.ReadResource(path)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		if _, err := e.LoadExtraDictionary(content); err != nil {
			return nil, err
		}
	}
	return e, nil
}
