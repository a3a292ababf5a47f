package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/teatak/fenci/config"
	"github.com/teatak/fenci/engine"
	"github.com/teatak/fenci/optimizer"
)

func main() {
	inputPath := flag.String("input", "data/text.txt", "Path to the raw input text file")
	outputPath := flag.String("output", "data/dict_discovered.txt", "Path to save the discovered words")
	configPath := flag.String("config", "", "Path to YAML config file")
	threshold := flag.Int("threshold", 10, "Minimum count for a word to be included")
	maxGram := flag.Int("ngram", 4, "Maximum N-gram length (e.g., 4 means discovering up to 4-character words)")
	ratio := flag.Float64("ratio", 0.9, "Prune a fragment when Count(longer)/Count(fragment) >= ratio")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	e, err := engine.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to load resources: %v", err)
	}

	// 1. Count N-grams
	log.Printf("Counting N-grams (2 to %d) in %s...", *maxGram, *inputPath)
	file, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	counts, err := optimizer.Discover(file, *maxGram)
	file.Close()
	if err != nil {
		log.Fatalf("Error reading file: %v", err)
	}

	// 2. Filter and suggest frequencies
	log.Printf("Filtering words with count >= %d...", *threshold)
	candidates, err := optimizer.Candidates(e.Dictionary(), counts, *threshold, *ratio)
	if err != nil {
		log.Fatalf("Failed to rank candidates: %v", err)
	}

	// 3. Save as a user dictionary
	outFile, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Failed to create dict: %v", err)
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	for _, c := range candidates {
		fmt.Fprintf(writer, "%s %d\n", c.Word, c.Freq)
	}
	if err := writer.Flush(); err != nil {
		log.Fatalf("Failed to write dict: %v", err)
	}

	log.Printf("Done! Discovered %d words from %d n-grams.", len(candidates), len(counts))
	log.Printf("Saved to %s", *outputPath)
}
