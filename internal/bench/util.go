package bench

import (
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
)

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// FormatPermutation печатает перестановку через пробел.
func FormatPermutation(perm []int) string {
	parts := make([]string, len(perm))
	for i, v := range perm {
		parts[i] = itoa(v)
	}
	return strings.Join(parts, " ")
}
