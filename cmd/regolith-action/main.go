// Command regolith-action installs the regolith CLI on a CI runner, puts it
// on PATH for the following steps of the job and appends the configured
// resolvers to the regolith config of the workspace.
//
// Inputs are read the way workflow steps receive them (INPUT_* variables),
// so the binary runs unchanged inside a workflow. Flags override them for
// local runs.
package main

import (
	"context"
	"os"

	"github.com/sethvargo/go-githubactions"
)

func main() {
	if err := newRootCmd(githubactions.New()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
