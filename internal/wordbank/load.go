package wordbank

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/ghosttype/internal/model"
)

// LoadWords reads one word per line, lowercased, keeping only plain ASCII words.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !isPlainWord(line) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadOverrides replaces tiers with <tier>.txt files found in dir.
// A missing file keeps the built-in tier.
func (b *Bank) LoadOverrides(dir string) ([]model.Tier, error) {
	if dir == "" {
		return nil, nil
	}
	var replaced []model.Tier
	for _, tier := range model.Tiers {
		path := filepath.Join(dir, tier.String()+".txt")
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		words, err := LoadWords(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s words: %w", tier, err)
		}
		b.Replace(tier, words)
		replaced = append(replaced, tier)
	}
	return replaced, nil
}

func isPlainWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
