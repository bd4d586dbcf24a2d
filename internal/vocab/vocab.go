// Package vocab holds the closed, ordered set of tags a reviewer may confirm.
//
// A Vocabulary is built once at process start, either from the embedded
// standard list or from a YAML file, and is read-only afterwards.
package vocab

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tagreview/internal/reviewerr"
)

//go:embed standard.yaml
var standardYAML []byte

type document struct {
	Tags []Entry `yaml:"tags"`
}

// Entry is one vocabulary tag with optional guidance showing the kind of
// feedback it applies to.
type Entry struct {
	Name    string `yaml:"name" json:"name"`
	Example string `yaml:"example,omitempty" json:"example,omitempty"`
}

// UnmarshalYAML accepts either a bare tag name or a {name, example} mapping.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*e = Entry{Name: node.Value}
		return nil
	}
	type plain Entry
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	*e = Entry(out)
	return nil
}

// Vocabulary is an ordered tag set. The zero value is empty and rejects every tag.
type Vocabulary struct {
	tags     []string
	examples []string
	index    map[string]int
}

// New builds a vocabulary from the given tags. Surrounding whitespace is
// trimmed and repeated entries keep their first position.
func New(tags ...string) (*Vocabulary, error) {
	entries := make([]Entry, len(tags))
	for i, tag := range tags {
		entries[i] = Entry{Name: tag}
	}
	return NewEntries(entries...)
}

// NewEntries builds a vocabulary from entries carrying example text. A
// repeated name keeps its first position and example.
func NewEntries(entries ...Entry) (*Vocabulary, error) {
	v := &Vocabulary{index: make(map[string]int, len(entries))}
	for _, entry := range entries {
		tag := strings.TrimSpace(entry.Name)
		if tag == "" {
			return nil, errors.New("vocabulary: empty tag")
		}
		if _, ok := v.index[tag]; ok {
			continue
		}
		v.index[tag] = len(v.tags)
		v.tags = append(v.tags, tag)
		v.examples = append(v.examples, strings.TrimSpace(entry.Example))
	}
	if len(v.tags) == 0 {
		return nil, errors.New("vocabulary: no tags defined")
	}
	return v, nil
}

// Standard returns the embedded vocabulary.
func Standard() *Vocabulary {
	v, err := parse(standardYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary: %v", err))
	}
	return v
}

// Load reads a YAML vocabulary file. An empty path yields Standard().
func Load(path string) (*Vocabulary, error) {
	if strings.TrimSpace(path) == "" {
		return Standard(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	v, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func parse(data []byte) (*Vocabulary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return NewEntries(doc.Tags...)
}

// Contains reports whether tag is part of the vocabulary.
func (v *Vocabulary) Contains(tag string) bool {
	if v == nil {
		return false
	}
	_, ok := v.index[tag]
	return ok
}

// All returns the tags in vocabulary order.
func (v *Vocabulary) All() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.tags))
	copy(out, v.tags)
	return out
}

// Entries returns the tags with their example text in vocabulary order.
func (v *Vocabulary) Entries() []Entry {
	if v == nil {
		return nil
	}
	out := make([]Entry, len(v.tags))
	for i, tag := range v.tags {
		out[i] = Entry{Name: tag, Example: v.examples[i]}
	}
	return out
}

// Example returns the guidance text for tag, or "" when the tag has none or
// is not in the vocabulary.
func (v *Vocabulary) Example(tag string) string {
	if v == nil {
		return ""
	}
	if i, ok := v.index[tag]; ok {
		return v.examples[i]
	}
	return ""
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.tags)
}

// Canonicalize validates a selection and returns it deduplicated in
// vocabulary order. Out-of-vocabulary values are all reported together.
func (v *Vocabulary) Canonicalize(selection []string) ([]string, error) {
	var invalid []string
	seenInvalid := make(map[string]struct{})
	picked := make(map[int]struct{}, len(selection))
	for _, tag := range selection {
		pos, ok := -1, false
		if v != nil {
			pos, ok = v.index[tag]
		}
		if !ok {
			if _, dup := seenInvalid[tag]; !dup {
				seenInvalid[tag] = struct{}{}
				invalid = append(invalid, tag)
			}
			continue
		}
		picked[pos] = struct{}{}
	}
	if len(invalid) > 0 {
		return nil, &reviewerr.InvalidTagError{Tags: invalid}
	}
	out := make([]string, 0, len(picked))
	for i, tag := range v.All() {
		if _, ok := picked[i]; ok {
			out = append(out, tag)
		}
	}
	return out, nil
}
