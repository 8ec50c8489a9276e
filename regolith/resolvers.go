package regolith

import (
	"context"
	"fmt"

	action "github.com/Bedrock-OSS/regolith-action"
)

// AppendResolvers adds every resolver to the regolith config of dir, running
// `regolith config resolvers --append <resolver>` once per value, in order.
// The first failing invocation stops the sequence; resolvers appended before
// it are kept.
func AppendResolvers(ctx context.Context, executable string, resolvers []string, dir string, opts ...action.RunnerOpt) error {
	for _, resolver := range resolvers {
		action.LogStep(fmt.Sprintf("appending resolver %s", resolver))

		runopts := append(
			[]action.RunnerOpt{
				action.WithArgs("config", "resolvers", "--append", resolver),
				action.WithDir(dir),
			},
			opts...,
		)

		if err := action.Run(ctx, executable, runopts...); err != nil {
			return fmt.Errorf("failed to append resolver %s: %w", resolver, err)
		}
	}

	return nil
}
