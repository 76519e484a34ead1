package staging

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/grovetools/ctnotes/errors"
	"github.com/grovetools/ctnotes/pkg/process"
)

// SweepResult reports what an orphan sweep did.
type SweepResult struct {
	Removed []string
	Skipped []string
	Failed  map[string]error
}

// Sweep removes hidden directories under root that were left behind by
// processes that no longer exist. Only directories named "<prefix>-<pid>-*"
// whose pid is dead are touched; the current process is always skipped.
// Orphans are removed recursively since their owner can no longer clean them.
func Sweep(root, prefix string) (*SweepResult, error) {
	if root == "" {
		root = os.TempDir()
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to read staging root").
			WithDetail("root", root)
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d+)-`)
	self := os.Getpid()
	result := &SweepResult{Failed: make(map[string]error)}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		match := pattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		path := filepath.Join(root, entry.Name())

		pid, err := strconv.Atoi(match[1])
		if err != nil || pid == self || process.IsProcessAlive(pid) {
			result.Skipped = append(result.Skipped, path)
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			result.Failed[path] = errors.TeardownFailed(path, err)
			continue
		}
		result.Removed = append(result.Removed, path)
	}

	return result, nil
}
