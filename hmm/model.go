package hmm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/teatak/fenci/data"
)

// State constants, in the order used to break Viterbi ties.
const (
	StateB = 0 // Begin
	StateE = 1 // End
	StateM = 2 // Middle
	StateS = 3 // Single
)

// MinFloat is the log-probability of impossible starts and transitions, and
// of characters a state never emitted.
const MinFloat = -3.14e100

// ErrInvalidModel is returned for model files with unknown records or states.
var ErrInvalidModel = errors.New("hmm: invalid model")

// Model is a four-state character model for words missing from the dictionary.
// It is immutable after Load and safe for concurrent use.
type Model struct {
	// Start[state] = log P(first character is in state)
	Start [4]float64
	// Trans[from][to] = log P(to | from)
	Trans [4][4]float64
	// Emit[state][char] = log P(char | state)
	Emit [4]map[rune]float64
	// Tags[state] is the part of speech most often seen for words ending in state.
	Tags [4]string
}

// NewModel creates a model where every start and transition is impossible.
func NewModel() *Model {
	m := &Model{}
	for i := 0; i < 4; i++ {
		m.Start[i] = MinFloat
		for j := 0; j < 4; j++ {
			m.Trans[i][j] = MinFloat
		}
		m.Emit[i] = make(map[rune]float64)
	}
	return m
}

// Default returns the embedded model.
func Default() (*Model, error) {
	m := NewModel()
	if err := m.Load(bytes.NewReader(data.HMMModel)); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads a text model.
// Format lines:
// S state logprob
// T from_state to_state logprob
// E state char logprob
// P state tag
// Lines with unparsable numbers are skipped.
func (m *Model) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if err := m.parseRecord(parts); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func (m *Model) parseRecord(parts []string) error {
	switch kind := parts[0]; {
	case kind == "S" && len(parts) == 3:
		s := parseState(parts[1])
		if s < 0 {
			return ErrInvalidModel
		}
		if p, err := strconv.ParseFloat(parts[2], 64); err == nil {
			m.Start[s] = p
		}
	case kind == "T" && len(parts) == 4:
		from := parseState(parts[1])
		to := parseState(parts[2])
		if from < 0 || to < 0 {
			return ErrInvalidModel
		}
		if p, err := strconv.ParseFloat(parts[3], 64); err == nil {
			m.Trans[from][to] = p
		}
	case kind == "E" && len(parts) == 4:
		s := parseState(parts[1])
		char, size := utf8.DecodeRuneInString(parts[2])
		if s < 0 || size != len(parts[2]) || char == utf8.RuneError {
			return ErrInvalidModel
		}
		if p, err := strconv.ParseFloat(parts[3], 64); err == nil {
			m.Emit[s][char] = p
		}
	case kind == "P" && len(parts) == 3:
		s := parseState(parts[1])
		if s < 0 {
			return ErrInvalidModel
		}
		m.Tags[s] = parts[2]
	default:
		return ErrInvalidModel
	}
	return nil
}

// Emission returns log P(char | state), MinFloat for unseen characters.
func (m *Model) Emission(state int, char rune) float64 {
	if p, ok := m.Emit[state][char]; ok {
		return p
	}
	return MinFloat
}

// StateStr returns the string representation of a state.
func StateStr(s int) string {
	switch s {
	case StateB:
		return "B"
	case StateE:
		return "E"
	case StateM:
		return "M"
	case StateS:
		return "S"
	}
	return "?"
}

func parseState(s string) int {
	switch s {
	case "B":
		return StateB
	case "E":
		return StateE
	case "M":
		return StateM
	case "S":
		return StateS
	default:
		return -1
	}
}
