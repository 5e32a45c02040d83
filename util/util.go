package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// GatherChartPaths expands each path into the .json charts it names: files are taken
// as given, directories are walked. Results are sorted and deduplicated.
func GatherChartPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(s), ".json") {
			seen[s] = true
		}
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", path)
		}
		if !info.IsDir() {
			seen[path] = true
			continue
		}
		if err := filepath.WalkDir(path, walk); err != nil {
			return nil, errors.Wrapf(err, "error walking %s", path)
		}
	}

	return SortedKeys(seen), nil
}

func GetKeys[A comparable, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}
