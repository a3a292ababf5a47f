package main

import (
	"flag"
	"log"
	"os"

	"github.com/teatak/fenci/hmm"
	"github.com/teatak/fenci/optimizer"
)

func main() {
	inputPath := flag.String("input", "", "Path to the segmented corpus file (space separated, optional /tag)")
	dictPath := flag.String("output", "dictionary.txt", "Path to save the generated dictionary")
	modelPath := flag.String("hmm", "", "Path to save the HMM model (optional)")
	fromDict := flag.Bool("from-dict", false, "Treat -input as a \"word freq [tag]\" dictionary and only re-estimate HMM emissions")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("Please provide an input file using -input flag")
	}
	if *fromDict {
		trainEmissions(*inputPath, *modelPath)
		return
	}

	log.Printf("Reading corpus from %s...", *inputPath)
	file, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Error opening input file: %v", err)
	}
	words, model, err := optimizer.Train(file)
	file.Close()
	if err != nil {
		log.Fatalf("Error scanning file: %v", err)
	}
	log.Printf("Found %d unique words. Generating dictionary...", len(words))

	outFile, err := os.Create(*dictPath)
	if err != nil {
		log.Fatalf("Error creating output file: %v", err)
	}
	defer outFile.Close()
	if err := optimizer.WriteWords(outFile, words); err != nil {
		log.Fatalf("Error writing to file: %v", err)
	}
	log.Printf("Dictionary saved to %s", *dictPath)

	if *modelPath == "" {
		return
	}
	saveModel(model, *modelPath)
}

// trainEmissions keeps the embedded starts and transitions.
func trainEmissions(inputPath, modelPath string) {
	if modelPath == "" {
		log.Fatal("Please provide a model path using -hmm flag")
	}
	base, err := hmm.Default()
	if err != nil {
		log.Fatalf("Error loading embedded model: %v", err)
	}

	log.Printf("Reading dictionary from %s...", inputPath)
	file, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("Error opening input file: %v", err)
	}
	model, err := optimizer.TrainEmissions(file, base)
	file.Close()
	if err != nil {
		log.Fatalf("Error scanning file: %v", err)
	}
	saveModel(model, modelPath)
}

func saveModel(model *hmm.Model, path string) {
	modelFile, err := os.Create(path)
	if err != nil {
		log.Fatalf("Error creating model file: %v", err)
	}
	defer modelFile.Close()
	if err := model.Save(modelFile); err != nil {
		log.Fatalf("Error writing model: %v", err)
	}
	log.Printf("HMM model saved to %s", path)
}
