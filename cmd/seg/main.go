package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/teatak/fenci/config"
	"github.com/teatak/fenci/engine"
	"github.com/teatak/fenci/segmenter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit status.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("seg", flag.ContinueOnError)
	flags.SetOutput(stderr)
	function := flags.String("func", "cut", "Function: cut, search, tokenize, tag, tfidf, textrank or suggest")
	mode := flags.String("mode", "hmm", "Segmentation mode: default, hmm or all")
	searchTokens := flags.Bool("search", false, "Emit overlapping search tokens (tokenize only)")
	configPath := flags.String("config", "", "Path to YAML config file")
	dictPath := flags.String("dict", "", "Extra user dictionary merged after the configured ones")
	topK := flags.Int("topk", 0, "Number of keywords (0 = config value)")
	tags := flags.String("tags", "", "Comma separated POS allow-list for keywords")
	format := flags.String("format", "text", "Output format: text, plain or json")
	if err := flags.Parse(argv); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *dictPath != "" {
		cfg.Dictionary.Extra = append(cfg.Dictionary.Extra, *dictPath)
	}
	if *topK == 0 {
		*topK = cfg.Keywords.TopK
	}

	segMode, err := segmenter.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	e, err := engine.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading resources: %v\n", err)
		return 1
	}

	var allowed []string
	if *tags != "" {
		allowed = strings.Split(*tags, ",")
	}
	tmode := segmenter.TokenizeDefault
	if *searchTokens {
		tmode = segmenter.TokenizeSearch
	}

	// process returns the result as a value for json and as a line otherwise
	process := func(text string) (any, string, error) {
		switch *function {
		case "search":
			words, err := e.CutForSearch(text, segMode)
			return words, formatWords(words, *format), err
		case "tokenize":
			tokens, err := e.Tokenize(text, tmode, segMode)
			return tokens, engine.FormatTokens(tokens), err
		case "tag":
			tagged, err := e.Tag(text, segMode)
			return tagged, engine.FormatTags(tagged), err
		case "tfidf":
			kws, err := e.ExtractKeywordsTFIDF(text, *topK, allowed...)
			return kws, engine.FormatKeywords(kws), err
		case "textrank":
			kws, err := e.ExtractKeywordsTextRank(text, *topK, allowed...)
			return kws, engine.FormatKeywords(kws), err
		case "suggest":
			freq, err := e.SuggestFrequency(strings.TrimSpace(text))
			return freq, fmt.Sprint(freq), err
		default:
			words, err := e.Cut(text, segMode)
			return words, formatWords(words, *format), err
		}
	}

	output := func(text string) error {
		value, line, err := process(text)
		if err != nil {
			return err
		}
		if *format == "json" {
			b, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			line = string(b)
		}
		fmt.Fprintln(stdout, line)
		return nil
	}

	// If args provided (non-flag args), segment them
	if args := flags.Args(); len(args) > 0 {
		if err := output(strings.Join(args, " ")); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// Otherwise interactive mode; a failing line does not end the session
	fmt.Fprintln(stderr, "Enter text to segment (Ctrl+D to exit):")
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := output(text); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func formatWords(words []string, format string) string {
	if format == "plain" {
		return engine.FormatWords(words)
	}
	return strings.Join(words, " / ")
}
