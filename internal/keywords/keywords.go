// Package keywords loads the search keyword list that drives a discovery run.
package keywords

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads keywords from r, one per line, preserving order. Blank lines
// and surrounding whitespace are ignored.
func Parse(r io.Reader) ([]string, error) {
	var kws []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		kw := strings.TrimSpace(scanner.Text())
		if kw == "" {
			continue
		}
		kws = append(kws, kw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keywords: %w", err)
	}

	return kws, nil
}

// LoadFile reads keywords from the file at path.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
