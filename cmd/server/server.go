package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/teatak/fenci/config"
	"github.com/teatak/fenci/dictionary"
	"github.com/teatak/fenci/engine"
	"github.com/teatak/fenci/optimizer"
	"github.com/teatak/fenci/segmenter"
	"github.com/teatak/fenci/store"
)

// server holds the engine with a RWMutex for hot reloading.
type server struct {
	cfg   *config.Config
	store *store.Store

	logMu     sync.Mutex
	accessLog io.Writer

	engLock sync.RWMutex
	eng     *engine.Engine
}

func newServer(cfg *config.Config, st *store.Store, accessLog io.Writer) *server {
	return &server{cfg: cfg, store: st, accessLog: accessLog}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/segment", s.handleSegment)
	mux.HandleFunc("/keywords", s.handleKeywords)
	mux.HandleFunc("/suggest", s.handleSuggest)
	mux.HandleFunc("/feedback", s.handleFeedback)         // 人工教词
	mux.HandleFunc("/trigger-discovery", s.handleTrigger) // 从访问日志挖掘新词
	mux.HandleFunc("/reload", s.handleReload)
	return mux
}

// reload rebuilds the engine from the configured resources and the store.
func (s *server) reload() error {
	log.Println("Reloading engine...")
	eng, err := engine.FromConfig(s.cfg, engine.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	content, err := s.store.Dictionary()
	if err != nil {
		return err
	}
	status, err := eng.LoadExtraDictionary(content)
	if err != nil {
		return err
	}
	log.Printf("Loaded user words from store: %s", status)

	removed, err := s.store.Removed()
	if err != nil {
		return err
	}
	for _, w := range removed {
		if _, err := eng.RemoveWord(w); err != nil {
			return err
		}
	}

	s.engLock.Lock()
	s.eng = eng
	s.engLock.Unlock()
	log.Println("Engine reloaded successfully.")
	return nil
}

func (s *server) engine() *engine.Engine {
	s.engLock.RLock()
	defer s.engLock.RUnlock()
	return s.eng
}

// Request/Response types
type SegRequest struct {
	Text     string `json:"text"`
	Function string `json:"function"` // cut, search, tokenize, tag
	Mode     string `json:"mode"`     // default, hmm, all
	Search   bool   `json:"search"`   // search tokens for tokenize
}

type KeywordRequest struct {
	Text   string   `json:"text"`
	Method string   `json:"method"` // tfidf, textrank
	TopK   int      `json:"top_k"`
	Tags   []string `json:"tags"`
}

type FeedbackResponse struct {
	Added   []dictionary.Entry `json:"added"`
	Removed []string           `json:"removed"`
}

func (s *server) handleSegment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SegRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode := segmenter.ModeHMM
	if req.Mode != "" {
		m, err := segmenter.ParseMode(req.Mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = m
	}

	// 1. Log input for future discovery
	s.logInput(req.Text)

	// 2. Process
	e := s.engine()
	var (
		result any
		err    error
	)
	switch req.Function {
	case "search":
		result, err = e.CutForSearch(req.Text, mode)
	case "tokenize":
		tmode := segmenter.TokenizeDefault
		if req.Search {
			tmode = segmenter.TokenizeSearch
		}
		result, err = e.Tokenize(req.Text, tmode, mode)
	case "tag":
		result, err = e.Tag(req.Text, mode)
	default:
		result, err = e.Cut(req.Text, mode)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

func (s *server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req KeywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TopK == 0 {
		req.TopK = s.cfg.Keywords.TopK
	}

	e := s.engine()
	extract := e.ExtractKeywordsTFIDF
	if req.Method == "textrank" {
		extract = e.ExtractKeywordsTextRank
	}
	kws, err := extract(req.Text, req.TopK, req.Tags...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, kws)
}

func (s *server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimSpace(r.URL.Query().Get("word"))
	if word == "" {
		http.Error(w, "word param required", http.StatusBadRequest)
		return
	}
	freq, err := s.engine().SuggestFrequency(word)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"word": word, "freq": freq})
}

// handleFeedback teaches words. POST adds them; several space separated
// words also remove the dictionary words that cross their boundaries.
// DELETE removes a word.
func (s *server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	rawInput := r.URL.Query().Get("word")
	words := strings.Fields(rawInput)
	if len(words) == 0 {
		http.Error(w, "word param required", http.StatusBadRequest)
		return
	}

	e := s.engine()
	var resp FeedbackResponse
	switch r.Method {
	case http.MethodDelete:
		for _, word := range words {
			if _, err := e.RemoveWord(word); err != nil {
				writeError(w, err)
				return
			}
			if err := s.store.Remove(word); err != nil {
				writeError(w, err)
				return
			}
			resp.Removed = append(resp.Removed, word)
		}

	case http.MethodPost:
		tag := r.URL.Query().Get("tag")
		// e.g. "南京市 长江大桥" implies "市长" is wrong here
		straddlers, err := optimizer.Straddlers(e.Dictionary(), words)
		if err != nil {
			writeError(w, err)
			return
		}
		for _, word := range straddlers {
			if _, err := e.RemoveWord(word); err != nil {
				writeError(w, err)
				return
			}
			if err := s.store.Remove(word); err != nil {
				writeError(w, err)
				return
			}
			resp.Removed = append(resp.Removed, word)
		}
		for _, word := range words {
			if utf8.RuneCountInString(word) < 2 && len(words) > 1 {
				continue
			}
			entry, err := s.addWord(e, word, tag)
			if err != nil {
				writeError(w, err)
				return
			}
			resp.Added = append(resp.Added, entry)
		}

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, resp)
}

func (s *server) addWord(e *engine.Engine, word, tag string) (dictionary.Entry, error) {
	freq, err := e.AddWord(word, 0, tag)
	if err != nil {
		return dictionary.Entry{}, err
	}
	entry, _ := e.Dictionary().Lookup(word)
	entry.Freq = freq
	return entry, s.store.Put(entry)
}

// handleTrigger mines the access log for new words, adds them and truncates
// the log so the same text is not counted twice.
func (s *server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path := s.cfg.Server.AccessLog
	if path == "" {
		http.Error(w, "access log disabled", http.StatusConflict)
		return
	}

	log.Println("Running unsupervised discovery on access logs...")
	s.logMu.Lock()
	defer s.logMu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		writeError(w, err)
		return
	}
	// threshold=3, ngram=4
	counts, err := optimizer.Discover(f, 4)
	f.Close()
	if err != nil {
		writeError(w, err)
		return
	}

	e := s.engine()
	candidates, err := optimizer.Candidates(e.Dictionary(), counts, 3, 0.9)
	if err != nil {
		writeError(w, err)
		return
	}
	var resp FeedbackResponse
	for _, c := range candidates {
		entry, err := s.addWord(e, c.Word, "")
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Added = append(resp.Added, entry)
	}

	// Truncate access log after processing so we don't re-process old data
	if err := os.Truncate(path, 0); err != nil {
		log.Printf("Warning: Failed to truncate log file: %v", err)
	}
	log.Printf("Discovery added %d words.", len(resp.Added))
	writeJSON(w, resp)
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Query().Get("clear") == "1" {
		if err := s.store.Clear(); err != nil {
			writeError(w, err)
			return
		}
	}
	if err := s.reload(); err != nil {
		writeError(w, err)
		return
	}
	fmt.Fprintln(w, "Engine reloaded.")
}

func (s *server) logInput(text string) {
	if utf8.RuneCountInString(text) <= 2 {
		return
	}
	s.logMu.Lock()
	defer s.logMu.Unlock()
	if _, err := io.WriteString(s.accessLog, strings.ReplaceAll(text, "\n", " ")+"\n"); err != nil {
		log.Printf("Warning: access log: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Warning: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, segmenter.ErrInvalidMode), errors.Is(err, segmenter.ErrNoModel), errors.Is(err, dictionary.ErrEmptyWord):
		code = http.StatusBadRequest
	case errors.Is(err, dictionary.ErrNotLoaded):
		code = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), code)
}
