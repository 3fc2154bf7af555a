// Package locator resolves the final-iteration result file inside a
// classification job directory.
//
// RELION writes one data star file per iteration, run_it<NNN>_data.star,
// and a terminal run_data.star once the job has converged. The terminal
// file always outranks every numbered iteration.
package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// NotFoundError reports a missing job directory or the absence of any
// candidate result file in it.
type NotFoundError struct {
	Dir     string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Dir)
}

// IterationKey orders classification snapshots. Final is the reserved
// terminal marker, strictly greater than any numbered iteration.
type IterationKey struct {
	Final  bool
	Number int
}

// Compare returns -1, 0 or 1 as k sorts before, equal to, or after o.
func (k IterationKey) Compare(o IterationKey) int {
	switch {
	case k.Final && !o.Final:
		return 1
	case !k.Final && o.Final:
		return -1
	case k.Number < o.Number:
		return -1
	case k.Number > o.Number:
		return 1
	}
	return 0
}

var candidatePattern = regexp.MustCompile(`^run(?:_it(\d+))?_data\.star$`)

// ParseFilename extracts the iteration key from a candidate filename.
// The second return is false when the name does not follow the result
// file convention.
func ParseFilename(name string) (IterationKey, bool) {
	m := candidatePattern.FindStringSubmatch(name)
	if m == nil {
		return IterationKey{}, false
	}
	if m[1] == "" {
		return IterationKey{Final: true}, true
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return IterationKey{}, false
	}
	return IterationKey{Number: n}, true
}

// FindFinal returns the result file representing the job's last completed
// iteration. Candidates claiming the same maximal key are resolved by
// lexicographically greatest filename so the choice is never arbitrary.
func FindFinal(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Dir: dir, Message: "job directory missing"}
		}
		return "", fmt.Errorf("read job directory %s: %w", dir, err)
	}

	var bestName string
	var bestKey IterationKey
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := ParseFilename(entry.Name())
		if !ok {
			continue
		}
		if bestName == "" {
			bestName, bestKey = entry.Name(), key
			continue
		}
		switch key.Compare(bestKey) {
		case 1:
			bestName, bestKey = entry.Name(), key
		case 0:
			if entry.Name() > bestName {
				bestName = entry.Name()
			}
		}
	}
	if bestName == "" {
		return "", &NotFoundError{Dir: dir, Message: "no final-iteration star file"}
	}
	return filepath.Join(dir, bestName), nil
}
