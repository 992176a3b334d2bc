// internal/words/words.go
//
// Dictionary loading for the suggestion engine.
//
// Responsibilities:
//   - Load the ordered word list from WORDS_FILE or fall back to the embedded words.json.
//   - Normalize entries (trim, lowercase) and keep only 5-letter a–z words.
//   - Preserve the declared order and drop duplicates (first occurrence wins);
//     dictionary order is the last-resort tie-break of the engine.
//   - Expose the list as an immutable Dictionary shared read-only by every session.
//
// File formats accepted for WORDS_FILE:
//   • JSON: a flat array of strings (same shape as the embedded words.json).
//   • Text: one word per line; blank lines and "#" comments are ignored.
//
// Initialization is run once (sync.Once); there is no reload path.

package words

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Length is the fixed word length of the puzzle.
const Length = 5

//go:embed words.json
var embeddedWords []byte

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is an ordered, de-duplicated, read-only word list.
type Dictionary struct {
	words []string
	set   map[string]struct{}
}

// New builds a Dictionary from raw entries, normalizing and filtering them.
func New(raw []string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{}, len(raw))}
	for _, w := range raw {
		w = normalize(w)
		if !IsWord(w) {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.words = append(d.words, w)
	}
	if len(d.words) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Words returns a copy of the ordered word list.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.words...)
}

// Each calls fn for every word in dictionary order until fn returns false.
func (d *Dictionary) Each(fn func(i int, w string) bool) {
	for i, w := range d.words {
		if !fn(i, w) {
			return
		}
	}
}

// Contains reports whether w (case-insensitive) is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[normalize(w)]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// MarshalJSON encodes the dictionary as a flat JSON array.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.words)
}

var (
	initOnce   sync.Once
	loaded     *Dictionary
	initialErr error
)

// Load reads the process-wide dictionary exactly once.
// WORDS_FILE overrides the embedded list.
func Load() (*Dictionary, error) {
	initOnce.Do(func() {
		var raw []string
		if path := os.Getenv("WORDS_FILE"); path != "" {
			raw, initialErr = readWordFile(path)
		} else {
			raw, initialErr = parse(embeddedWords)
		}
		if initialErr != nil {
			return
		}
		loaded, initialErr = New(raw)
	})
	return loaded, initialErr
}

// readWordFile loads a JSON array or a newline separated list from disk.
func readWordFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parse(b)
}

// parse accepts either a JSON array of strings or one word per line.
func parse(b []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(b)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var out []string
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode word list: %w", err)
		}
		return out, nil
	}

	var out []string
	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

func normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// IsWord reports whether w is exactly Length lowercase ASCII letters.
func IsWord(w string) bool {
	if len(w) != Length {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
