package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"

	"github.com/teatak/fenci/config"
	"github.com/teatak/fenci/engine"
	"github.com/teatak/fenci/segmenter"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred profile and file closes run.
func run(argv []string) error {
	flags := flag.NewFlagSet("batch_seg", flag.ContinueOnError)
	inputPath := flags.String("input", "data/text.txt", "Input file path")
	outputPath := flags.String("output", "data/corpus.txt", "Output file path")
	configPath := flags.String("config", "", "Path to YAML config file")
	dictPath := flags.String("dict", "", "Extra user dictionary")
	mode := flags.String("mode", "hmm", "Segmentation mode: default, hmm or all")
	cpuProfile := flags.String("profile", "", "Write a CPU profile to this directory")
	if err := flags.Parse(argv); err != nil {
		return err
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.Quiet).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *dictPath != "" {
		cfg.Dictionary.Extra = append(cfg.Dictionary.Extra, *dictPath)
	}
	segMode, err := segmenter.ParseMode(*mode)
	if err != nil {
		return err
	}

	// 1. Load Dictionary
	e, err := engine.FromConfig(cfg, engine.WithLogger(log.Default()))
	if err != nil {
		return fmt.Errorf("failed to load resources: %w", err)
	}

	// 2. Open Files
	inFile, err := os.Open(*inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	outFile, err := os.Create(*outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()
	writer := bufio.NewWriter(outFile)

	// 3. Process
	scanner := bufio.NewScanner(inFile)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	count := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts, err := e.Cut(line, segMode)
		if err != nil {
			return fmt.Errorf("failed to segment line %d: %w", count+1, err)
		}

		// Write space-separated tokens, dropping the spaces of the input
		words := parts[:0]
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				words = append(words, p)
			}
		}
		fmt.Fprintln(writer, strings.Join(words, " "))
		count++
		if count%1000 == 0 {
			log.Printf("Processed %d lines...", count)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Error scanning file: %v", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Printf("Done. Processed %d lines. Saved to %s", count, *outputPath)
	return nil
}
