package main

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	action "github.com/Bedrock-OSS/regolith-action"
	"github.com/Bedrock-OSS/regolith-action/binary"
	"github.com/Bedrock-OSS/regolith-action/config"
	"github.com/Bedrock-OSS/regolith-action/platform"
	"github.com/Bedrock-OSS/regolith-action/regolith"
	"github.com/Bedrock-OSS/regolith-action/toolcache"
)

// OutputPath is the step output holding the installed executable.
const OutputPath = "regolith-path"

type flags struct {
	version   string
	resolvers string
	workspace string
	file      string
}

func newRootCmd(gha *githubactions.Action) *cobra.Command {
	var opts flags

	cmd := &cobra.Command{
		Use:           "regolith-action",
		Short:         "Install regolith and configure its resolvers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := run(cmd.Context(), gha, regolith.ReleasesURL, func() (config.Inputs, error) {
				return loadInputs(cmd, gha, opts)
			})

			if res.Failed() {
				gha.Errorf("%s", res.Message())
				return res.Err
			}

			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

func (f *flags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.version, config.InputVersion, "", `regolith version to install, "latest" when empty`)
	cmd.Flags().StringVar(&f.resolvers, config.InputResolvers, "", "comma separated resolvers to append to the regolith config")
	cmd.Flags().StringVar(&f.workspace, "workspace", "", "directory the regolith config lives in")
	cmd.Flags().StringVarP(&f.file, "config", "c", "", "YAML file to read inputs from")
}

// loadInputs layers explicitly set flags on top of the workflow inputs.
func loadInputs(cmd *cobra.Command, gha *githubactions.Action, opts flags) (config.Inputs, error) {
	inputs, err := config.Load(gha, opts.file)
	if err != nil {
		return config.Inputs{}, err
	}

	if cmd.Flags().Changed(config.InputVersion) {
		inputs.Version = opts.version
	}
	if cmd.Flags().Changed(config.InputResolvers) {
		inputs.Resolvers = config.ParseResolvers(opts.resolvers)
	}
	if cmd.Flags().Changed("workspace") {
		inputs.Workspace = opts.workspace
	}

	return inputs.Normalize()
}

// run installs regolith from the releases published under baseURL and configures it,
// returning the outcome of the whole sequence.
func run(ctx context.Context, gha *githubactions.Action, baseURL string, load func() (config.Inputs, error)) action.Result {
	var (
		inputs       config.Inputs
		installation binary.Installation
	)

	act := action.New(
		action.WithPreExecFunc(func(_ context.Context) error {
			loaded, err := load()
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return err
			}

			for _, warning := range loaded.Warnings() {
				gha.Warningf("%s", warning)
			}

			inputs = loaded
			action.LogStep(fmt.Sprintf("workspace directory %s", inputs.Workspace))
			return nil
		}),
	)

	return act.Execute(
		ctx,
		func(ctx context.Context) error {
			cache, err := toolcache.FromEnv(gha.Getenv)
			if err != nil {
				return err
			}
			action.LogDetail(fmt.Sprintf("tool cache %s", cache.Root()))

			installer := regolith.Installer{
				Platform: platform.Detect(),
				Cache:    cache,
				WorkDir:  gha.Getenv("RUNNER_TEMP"),
				BaseURL:  baseURL,
			}

			installation, err = installer.Install(ctx, inputs.Version)
			return err
		},
		func(_ context.Context) error {
			return action.AddPath(gha, installation.Dir)
		},
		func(ctx context.Context) error {
			return regolith.AppendResolvers(ctx, installation.Executable, inputs.Resolvers, inputs.Workspace)
		},
		func(_ context.Context) error {
			gha.SetOutput(OutputPath, installation.Executable)
			action.LogStep("regolith installed successfully")
			return nil
		},
	)
}
