// Package topics loads the per-language seed topic lists and picks topics from them.
package topics

import (
	"bufio"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// Seeds maps each language to its topic list.
type Seeds map[config.Language][]string

// SeedFile is the file name holding the topics for lang.
func SeedFile(lang config.Language) string {
	return "seed_" + string(lang) + ".txt"
}

// Load reads a newline-delimited topic file; lines are trimmed and blank lines dropped.
func Load(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.NotFoundError("failed to open seed topics").WithCause(err).
			WithContext("path", path).Build()
	}
	defer func() { _ = f.Close() }()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.FileSystemError("failed to read seed topics").WithCause(err).
			WithContext("path", path).Build()
	}
	return out, nil
}

// LoadAll reads the seed file of every language from dir. Any missing file is fatal.
func LoadAll(dir string, langs []config.Language) (Seeds, error) {
	seeds := make(Seeds, len(langs))
	for _, lang := range langs {
		list, err := Load(filepath.Join(dir, SeedFile(lang)))
		if err != nil {
			return nil, err
		}
		seeds[lang] = list
	}
	return seeds, nil
}

// Picker draws topics uniformly at random, with replacement.
type Picker struct {
	rng *rand.Rand
}

// NewPicker returns a picker driven by a PCG source seeded with seed, so the
// sequence of picks is reproducible.
func NewPicker(seed uint64) *Picker {
	return &Picker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns one element of list.
func (p *Picker) Pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", errors.NewError(errors.CategoryValidation, "no seed topics to pick from").Fatal().UserAction().Build()
	}
	return list[p.rng.IntN(len(list))], nil
}
