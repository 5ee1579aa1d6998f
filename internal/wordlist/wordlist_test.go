package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadWordsSkipsBlankAndComments(t *testing.T) {
	words, err := ReadWords(strings.NewReader("# header\ncat\n\n  dog  \n"))
	if err != nil {
		t.Fatalf("read words: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"cat", "dog"}) {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestReadWordsEmpty(t *testing.T) {
	if _, err := ReadWords(strings.NewReader("\n# nothing\n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestEmbeddedEnglish(t *testing.T) {
	words, err := Embedded()
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	if len(words) < 100 {
		t.Fatalf("expected a real word list, got %d words", len(words))
	}
	filter := FilterForLang(DefaultLang)
	for _, w := range words {
		if !filter(w) {
			t.Fatalf("embedded word %q fails the english filter", w)
		}
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	words, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) == 0 {
		t.Fatalf("expected embedded words")
	}
}

func TestLoadPrefersFile(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "english", "alpha\nBeta\ngamma\n")
	words, err := Load(dir, "English")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"alpha", "gamma"}) {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadFilteredToNothing(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "english", "Upper\nCase\n")
	if _, err := Load(dir, "english"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadUnknownLanguageSuggests(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "german", "haus\n")
	_, err := Load(dir, "germn")
	if err == nil {
		t.Fatalf("expected error for unknown language")
	}
	if !strings.Contains(err.Error(), `did you mean "german"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestLanguages(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "german", "haus\n")
	writeList(t, dir, "english", "cat\n")
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	langs, err := Languages(dir)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if !reflect.DeepEqual(langs, []string{"english", "german"}) {
		t.Fatalf("unexpected languages: %v", langs)
	}
	langs, err = Languages(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("missing dir: %v", err)
	}
	if !reflect.DeepEqual(langs, []string{"english"}) {
		t.Fatalf("unexpected languages: %v", langs)
	}
}

func writeList(t *testing.T, dir, lang, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, lang+".txt"), []byte(body), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
}
