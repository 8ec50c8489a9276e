package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-githubactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionWithEnv(env map[string]string) *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(new(bytes.Buffer)),
		githubactions.WithGetenv(func(key string) string { return env[key] }),
	)
}

func TestParseResolvers(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "trims and drops empties", raw: " a, b ,,c ", expected: []string{"a", "b", "c"}},
		{name: "single", raw: "github.com/Bedrock-OSS/regolith-filters", expected: []string{"github.com/Bedrock-OSS/regolith-filters"}},
		{name: "keeps order", raw: "z,y,x", expected: []string{"z", "y", "x"}},
		{name: "keeps duplicates", raw: "a,a", expected: []string{"a", "a"}},
		{name: "empty", raw: "", expected: []string{}},
		{name: "only separators and spaces", raw: " , ,, ", expected: []string{}},
	}

	for _, test := range tests {
		t.Run(test.name,
			func(t *testing.T) {
				assert.Equal(t, test.expected, ParseResolvers(test.raw))
			},
		)
	}
}

func TestLoadFromWorkflowInputs(t *testing.T) {
	workspace := t.TempDir()

	inputs, err := Load(actionWithEnv(map[string]string{
		"INPUT_REGOLITH-VERSION": "1.2.0",
		"INPUT_RESOLVERS":        " a, b ,,c ",
		"GITHUB_WORKSPACE":       workspace,
	}), "")
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", inputs.Version)
	assert.Equal(t, []string{"a", "b", "c"}, inputs.Resolvers)
	assert.Equal(t, workspace, inputs.Workspace)
}

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	inputs, err := Load(actionWithEnv(nil), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, inputs.Version)
	assert.Empty(t, inputs.Resolvers)
	assert.Equal(t, wd, inputs.Workspace)
}

func TestLoadFile(t *testing.T) {
	workspace := t.TempDir()
	file := filepath.Join(t.TempDir(), "inputs.yaml")
	content := "regolith-version: 1.1.0\n" +
		"resolvers:\n" +
		"  - ' first '\n" +
		"  - ''\n" +
		"  - second\n" +
		"workspace: " + workspace + "\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	t.Run("file values",
		func(t *testing.T) {
			inputs, err := Load(actionWithEnv(nil), file)
			require.NoError(t, err)

			assert.Equal(t, "1.1.0", inputs.Version)
			assert.Equal(t, []string{"first", "second"}, inputs.Resolvers)
			assert.Equal(t, workspace, inputs.Workspace)
		},
	)

	t.Run("workflow inputs win",
		func(t *testing.T) {
			inputs, err := Load(actionWithEnv(map[string]string{
				"INPUT_REGOLITH-VERSION": "latest",
				"INPUT_RESOLVERS":        "other",
			}), file)
			require.NoError(t, err)

			assert.Equal(t, "latest", inputs.Version)
			assert.Equal(t, []string{"other"}, inputs.Resolvers)
			assert.Equal(t, workspace, inputs.Workspace)
		},
	)

	t.Run("missing file",
		func(t *testing.T) {
			_, err := Load(actionWithEnv(nil), filepath.Join(t.TempDir(), "nope.yaml"))
			assert.ErrorContains(t, err, "failed to read inputs file")
		},
	)

	t.Run("malformed file",
		func(t *testing.T) {
			broken := filepath.Join(t.TempDir(), "broken.yaml")
			require.NoError(t, os.WriteFile(broken, []byte("resolvers: [unterminated"), 0o644))

			_, err := LoadFile(broken)
			assert.ErrorContains(t, err, "failed to unmarshal")
		},
	)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.NoError(t, Inputs{Version: "1.2.0", Workspace: dir}.Validate())
	assert.ErrorContains(t, Inputs{Version: "1.2.0", Workspace: file}.Validate(), "not a directory")
	assert.ErrorContains(t, Inputs{Version: "1.2.0", Workspace: filepath.Join(dir, "missing")}.Validate(), "not accessible")

	err := Inputs{Workspace: file}.Validate()
	assert.ErrorContains(t, err, "version must be set")
	assert.ErrorContains(t, err, "not a directory")
}

func TestWarnings(t *testing.T) {
	assert.Empty(t, Inputs{Version: "latest"}.Warnings())
	assert.Empty(t, Inputs{Version: "1.2.0"}.Warnings())
	assert.Empty(t, Inputs{Version: "v1.2.0"}.Warnings())
	assert.Empty(t, Inputs{Version: "1.5.0-beta.1"}.Warnings())
	assert.Len(t, Inputs{Version: "Latest"}.Warnings(), 1)
	assert.Len(t, Inputs{Version: "nightly"}.Warnings(), 1)
}
