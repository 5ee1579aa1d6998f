// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultLang is the language shipped inside the binary.
const DefaultLang = "english"

// ErrEmpty is returned when a word list holds no usable words.
var ErrEmpty = errors.New("word list is empty")

//go:embed words/english.txt
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
	return ReadWords(file)
}

// ReadWords reads one word per line. Blank lines and lines starting with #
// are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// Embedded returns the built-in english list.
func Embedded() ([]string, error) {
	f, err := embedded.Open("words/english.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded word list: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
	}()
	return ReadWords(f)
}

// Load returns the words for lang. A file named <lang>.txt in dir wins over
// the embedded list, so users can replace english as well. Words rejected by
// the language filter are dropped.
func Load(dir, lang string) ([]string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLang
	}
	words, err := loadRaw(dir, lang)
	if err != nil {
		return nil, err
	}
	keep := FilterForLang(lang)
	filtered := words[:0]
	for _, w := range words {
		if keep(w) {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no usable words for %q: %w", lang, ErrEmpty)
	}
	return filtered, nil
}

func loadRaw(dir, lang string) ([]string, error) {
	if dir != "" {
		path := filepath.Join(dir, lang+".txt")
		words, err := LoadWords(path)
		if err == nil {
			return words, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
		}
	}
	if lang == DefaultLang {
		return Embedded()
	}
	langs, err := Languages(dir)
	if err != nil {
		return nil, err
	}
	if hint := suggest(lang, langs); hint != "" {
		return nil, fmt.Errorf("unknown language %q (did you mean %q?)", lang, hint)
	}
	return nil, fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(langs, ", "))
}

// Languages lists the embedded language plus every <lang>.txt in dir, sorted.
// A missing directory is not an error.
func Languages(dir string) ([]string, error) {
	set := map[string]struct{}{DefaultLang: {}}
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.HasSuffix(name, ".txt") {
				continue
			}
			set[strings.ToLower(strings.TrimSuffix(name, ".txt"))] = struct{}{}
		}
	}
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

func suggest(input string, candidates []string) string {
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
