package action

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// AddPath makes dir discoverable on the execution path: later steps of the
// job see it through the workflow add-path mechanism and the current process
// gets it prepended to PATH.
//
// This is the only place the action mutates process-wide state.
func AddPath(gha *githubactions.Action, dir string) error {
	if dir == "" {
		return fmt.Errorf("path entry must not be empty")
	}

	gha.AddPath(dir)

	current := os.Getenv("PATH")
	for _, entry := range filepath.SplitList(current) {
		if entry == dir {
			return nil
		}
	}

	updated := dir
	if current != "" {
		updated = strings.Join([]string{dir, current}, string(os.PathListSeparator))
	}

	if err := os.Setenv("PATH", updated); err != nil {
		return fmt.Errorf("failed to update PATH: %w", err)
	}

	LogDetail(fmt.Sprintf("added %s to PATH", dir))
	return nil
}
