package cli

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	ptrie "github.com/absolutelightning/go-ordered-trie"
	"github.com/absolutelightning/go-ordered-trie/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
)

// store is a trie keyed by text, whatever the symbol type underneath.
type store interface {
	Insert(key, value string)
	Get(key string) (string, bool)
	Prefixes(key string) []string
	Longest(key string) (string, bool)
	Postfixes(prefix string) []string
	Remove(prefix string)
	Each(fn func(key, value string))
	Len() int
	Dump(w io.Writer)
}

type trieStore[K constraints.Ordered] struct {
	trie  *ptrie.Trie[K, string]
	split func(string) iter.Seq[K]
	join  func([]K) string
}

func (s *trieStore[K]) Insert(key, value string) { s.trie.Insert(s.split(key), value) }

func (s *trieStore[K]) Get(key string) (string, bool) { return s.trie.Get(s.split(key)) }

func (s *trieStore[K]) Prefixes(key string) []string { return s.trie.FindPrefixes(s.split(key)) }

func (s *trieStore[K]) Longest(key string) (string, bool) {
	return s.trie.FindLongestPrefix(s.split(key))
}

func (s *trieStore[K]) Postfixes(prefix string) []string {
	return s.trie.FindPostfixes(s.split(prefix))
}

func (s *trieStore[K]) Remove(prefix string) { s.trie.RemoveSubtree(s.split(prefix)) }

func (s *trieStore[K]) Each(fn func(key, value string)) {
	for k, v := range s.trie.All() {
		fn(s.join(k), v)
	}
}

func (s *trieStore[K]) Len() int { return s.trie.Len() }

func (s *trieStore[K]) Dump(w io.Writer) { s.trie.Dump(w) }

func newStore(cfg *config.Config, log zerolog.Logger) store {
	opt := ptrie.WithLogger(log)
	switch cfg.Keys.Mode {
	case config.ModeRunes:
		return &trieStore[rune]{
			trie:  ptrie.New[rune, string](opt),
			split: ptrie.Runes,
			join:  func(k []rune) string { return string(k) },
		}
	case config.ModeSegments:
		sep := cfg.Keys.Separator
		// Segment keys print as absolute paths. Segments drops empty
		// segments, so the printed form reads back as the same key.
		return &trieStore[string]{
			trie:  ptrie.New[string, string](opt),
			split: func(s string) iter.Seq[string] { return ptrie.Segments(s, sep) },
			join:  func(k []string) string { return sep + strings.Join(k, sep) },
		}
	}
	return &trieStore[byte]{
		trie:  ptrie.New[byte, string](opt),
		split: ptrie.Bytes,
		join:  func(k []byte) string { return string(k) },
	}
}

// readEntries parses one entry per line: a key, optionally followed by a
// tab and a value. The value defaults to the key. Blank lines and lines
// starting with # are skipped.
func readEntries(r io.Reader, fn func(key, value string)) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, found := strings.Cut(text, "\t")
		if !found {
			value = key
		}
		fn(key, value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read entries at line %d: %w", line, err)
	}
	return nil
}

func loadEntries(path string, fn func(key, value string)) error {
	if path == "" {
		return fmt.Errorf("no key file configured, use --keys or PTRIE_KEYS_FILE")
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open key file: %w", err)
	}
	defer file.Close()
	return readEntries(file, fn)
}
