// Package config resolves the inputs of the action from the workflow
// environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/sethvargo/go-githubactions"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	InputVersion   = "regolith-version"
	InputResolvers = "resolvers"

	// EnvWorkspace points at the checked out repository on hosted runners.
	EnvWorkspace = "GITHUB_WORKSPACE"

	DefaultVersion = "latest"
)

// Inputs holds everything the action needs to run.
type Inputs struct {
	Version   string   `yaml:"regolith-version"`
	Resolvers []string `yaml:"resolvers"`
	Workspace string   `yaml:"workspace"`
}

// Load reads the inputs. Values from file, when given, are overridden by
// non-empty workflow inputs; the workspace comes from $GITHUB_WORKSPACE when set.
// The returned inputs are normalized.
func Load(gha *githubactions.Action, file string) (Inputs, error) {
	var inputs Inputs

	if file != "" {
		loaded, err := LoadFile(file)
		if err != nil {
			return Inputs{}, err
		}
		inputs = loaded
	}

	if version := gha.GetInput(InputVersion); version != "" {
		inputs.Version = version
	}

	if resolvers := gha.GetInput(InputResolvers); resolvers != "" {
		inputs.Resolvers = ParseResolvers(resolvers)
	}

	if workspace := gha.Getenv(EnvWorkspace); workspace != "" {
		inputs.Workspace = workspace
	}

	return inputs.Normalize()
}

// LoadFile reads inputs from a YAML file:
//
//	regolith-version: 1.2.0
//	resolvers:
//	  - github.com/Bedrock-OSS/regolith-filters
//	workspace: ./project
func LoadFile(path string) (Inputs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Inputs{}, fmt.Errorf("failed to read inputs file %s: %w", path, err)
	}

	var inputs Inputs
	if err := yaml.Unmarshal(raw, &inputs); err != nil {
		return Inputs{}, fmt.Errorf("failed to unmarshal inputs file %s: %w", path, err)
	}

	return inputs, nil
}

// Normalize trims every value, drops empty resolvers and fills in the
// defaults: the latest version and the current directory as workspace.
func (i Inputs) Normalize() (Inputs, error) {
	i.Version = strings.TrimSpace(i.Version)
	if i.Version == "" {
		i.Version = DefaultVersion
	}

	i.Resolvers = compact(i.Resolvers)

	i.Workspace = strings.TrimSpace(i.Workspace)
	if i.Workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Inputs{}, fmt.Errorf("failed to resolve workspace: %w", err)
		}
		i.Workspace = wd
	}

	return i, nil
}

// Validate returns an error for inputs that can't be used.
// Versions that don't look like a release tag are accepted, see [Inputs.Warnings].
func (i Inputs) Validate() error {
	var errs *multierror.Error

	if i.Version == "" {
		errs = multierror.Append(errs, errors.New("regolith version must be set"))
	}

	if i.Workspace != "" {
		info, err := os.Stat(i.Workspace)
		switch {
		case err != nil:
			errs = multierror.Append(errs, fmt.Errorf("workspace %s is not accessible: %w", i.Workspace, err))
		case !info.IsDir():
			errs = multierror.Append(errs, fmt.Errorf("workspace %s is not a directory", i.Workspace))
		}
	}

	return errs.ErrorOrNil()
}

// Warnings lists suspicious but accepted inputs.
func (i Inputs) Warnings() []string {
	var warnings []string

	if i.Version != DefaultVersion && !semver.IsValid("v"+strings.TrimPrefix(i.Version, "v")) {
		warnings = append(warnings, fmt.Sprintf("regolith version %q is not a semantic version, the download will likely fail", i.Version))
	}

	return warnings
}

// ParseResolvers splits a comma separated list, trimming every entry and
// dropping empty ones. Order is preserved.
func ParseResolvers(raw string) []string {
	return compact(strings.Split(raw, ","))
}

func compact(values []string) []string {
	return lo.Compact(lo.Map(values, func(value string, _ int) string {
		return strings.TrimSpace(value)
	}))
}
