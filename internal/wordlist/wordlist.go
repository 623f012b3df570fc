// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/guessr/internal/game"
)

//go:embed data/*.txt
var embedded embed.FS

// LoadWords reads one word per line from the provided file path.
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
	return readWords(file)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
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

// Lists holds the hangman words for each difficulty.
type Lists map[game.Level][]string

// FileName returns the file name holding the words for a level.
func FileName(level game.Level) string {
	return level.String() + ".txt"
}

// LoadDir reads easy.txt, medium.txt and hard.txt from dir. A missing file
// leaves that level empty; words rejected by Keep are dropped.
func LoadDir(dir string) (Lists, error) {
	lists := Lists{}
	for _, level := range game.Levels {
		words, err := LoadWords(filepath.Join(dir, FileName(level)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s word list: %w", level, err)
		}
		lists[level] = Filter(words)
	}
	return lists, nil
}

// Default returns the embedded word lists.
func Default() Lists {
	lists := Lists{}
	for _, level := range game.Levels {
		file, err := embedded.Open("data/" + FileName(level))
		if err != nil {
			continue
		}
		words, err := readWords(file)
		_ = file.Close()
		if err != nil {
			continue
		}
		lists[level] = Filter(words)
	}
	return lists
}

// WordsFor implements game.WordSource.
func (l Lists) WordsFor(level game.Level) ([]string, error) {
	words := l[level]
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no %s word list (expected %s)", game.ErrConfigurationMissing, level, FileName(level))
	}
	return words, nil
}

// Merge returns a copy of l where levels missing from l are taken from fallback.
func (l Lists) Merge(fallback Lists) Lists {
	out := Lists{}
	for level, words := range fallback {
		out[level] = words
	}
	for level, words := range l {
		if len(words) > 0 {
			out[level] = words
		}
	}
	return out
}
