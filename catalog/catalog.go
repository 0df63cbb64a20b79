package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/pianobench/model"
)

// Load reads the list of test cases written by the synth.
func Load(path string) ([]model.TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not find test configuration at %s: %w", path, err)
	}
	defer f.Close()

	cases, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return cases, nil
}

func Decode(r io.Reader) ([]model.TestCase, error) {
	var cases []model.TestCase
	if err := json.NewDecoder(r).Decode(&cases); err != nil {
		return nil, err
	}
	return cases, nil
}

type FilenameToIndex = map[string]int

func CreateFilenameIndex(cases []model.TestCase) FilenameToIndex {
	res := make(FilenameToIndex)
	for i, tc := range cases {
		res[tc.Filename] = i
	}
	return res
}

// Find looks a test case up by filename, with or without extension.
func Find(cases []model.TestCase, name string) (model.TestCase, bool) {
	for _, tc := range cases {
		if tc.Filename == name || trimExt(tc.Filename) == trimExt(name) {
			return tc, true
		}
	}
	return model.TestCase{}, false
}

// Variation is the synth's variation suffix: original, fast, slow or
// missed_notes.
func Variation(tc model.TestCase) string {
	base := trimExt(tc.Filename)
	if tc.Filename == tc.IdealFilename {
		return "original"
	}
	for _, v := range []string{"missed_notes", "fast", "slow"} {
		if strings.HasSuffix(base, "_"+v) {
			return v
		}
	}
	return "unknown"
}

// Piece is the base name shared by all variations of a piece.
func Piece(tc model.TestCase) string {
	return trimExt(tc.IdealFilename)
}

func trimExt(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
