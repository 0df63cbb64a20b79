package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// GetValues returns the values in key order.
func GetValues[A constraints.Ordered, B any](m map[A]B) []B {
	values := make([]B, 0, len(m))
	for _, k := range GetKeys(m) {
		values = append(values, m[k])
	}
	return values
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Abs[A Number](num A) A {
	if num < 0 {
		return -num
	}
	return num
}

func Sum[A Number](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

// Mean of an empty slice is 0
func Mean[A Number](nums []A) float64 {
	if len(nums) == 0 {
		return 0
	}
	return float64(Sum(nums)) / float64(len(nums))
}

// ReplaceExt swaps a trailing from extension for to. Names without the
// extension are returned unchanged.
func ReplaceExt(filename string, from string, to string) string {
	if from == "" || !strings.HasSuffix(filename, from) {
		return filename
	}
	return strings.TrimSuffix(filename, from) + to
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func GatherAllPaths(dir string, ext string) []string {
	var res []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return res
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			res = append(res, filepath.Join(dir, e.Name()))
		}
	}
	return res
}
