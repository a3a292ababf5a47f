package dictionary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedLine marks a dictionary line that was skipped.
var ErrMalformedLine = errors.New("dictionary: malformed line")

const maxLineSize = 1024 * 1024

// LoadStats summarizes one load, merge or overlay call.
type LoadStats struct {
	Added   int
	Updated int
	Skipped int
}

func (s LoadStats) String() string {
	return fmt.Sprintf("Ok: %d added, %d updated, %d skipped", s.Added, s.Updated, s.Skipped)
}

type line struct {
	word string
	freq int64 // 0 when absent
	tag  string
}

// parse reads "word [freq] [tag]" lines. Blank lines are ignored and
// malformed lines counted as skipped.
func parse(data []byte) ([]line, LoadStats, error) {
	var stats LoadStats
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var lines []line
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		l, err := parseLine(text)
		if err != nil {
			stats.Skipped++
			continue
		}
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("dictionary: read: %w", err)
	}
	return lines, stats, nil
}

func parseLine(text string) (line, error) {
	parts := strings.Fields(text)
	l := line{word: parts[0]}
	switch len(parts) {
	case 1:
	case 2:
		if freq, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			if freq < 0 {
				return line{}, ErrMalformedLine
			}
			l.freq = freq
		} else if isTag(parts[1]) {
			l.tag = parts[1]
		} else {
			return line{}, ErrMalformedLine
		}
	case 3:
		freq, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || freq < 0 || !isTag(parts[2]) {
			return line{}, ErrMalformedLine
		}
		l.freq = freq
		l.tag = parts[2]
	default:
		return line{}, ErrMalformedLine
	}
	return l, nil
}

func isTag(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return s != ""
}
