package main

import (
	"flag"
	"log"
	"os"

	"github.com/teatak/fenci/optimizer"
)

func main() {
	inputPath := flag.String("input", "data/dict_user.txt", "Input dictionary path")
	outputPath := flag.String("output", "data/dict_user_clean.txt", "Output dictionary path")
	ratio := flag.Float64("ratio", 0.9, "Frequency ratio threshold (if Freq(Super)/Freq(Sub) >= ratio, prune Sub)")
	flag.Parse()

	// 1. Load Dictionary
	log.Printf("Loading dictionary from %s...", *inputPath)
	file, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	words, err := optimizer.ReadWords(file)
	file.Close()
	if err != nil {
		log.Fatalf("Failed to read dictionary: %v", err)
	}

	// 2. Prune fragments
	totalBefore := len(words)
	cleaned := optimizer.Clean(words, *ratio)
	log.Printf("Pruned %d of %d words.", totalBefore-len(cleaned), totalBefore)

	// 3. Save
	outFile, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer outFile.Close()
	if err := optimizer.WriteWords(outFile, cleaned); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Saved %d words to %s", len(cleaned), *outputPath)
}
