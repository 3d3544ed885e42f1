package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jprobe.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// resetFlags undoes flag state left by a previous Execute in this process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	classes, appConfig, logger = nil, nil, nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChain(t *testing.T) {
	cfg := writeConfig(t, "samples = true\n")

	out, err := run(t, cfg, "chain", "Puppy")
	require.NoError(t, err)
	assert.Equal(t, "Object->Animal->Dog->Puppy\n", out)

	out, err = run(t, cfg, "chain", "jprobe.samples.Puppy", "-d", " > ")
	require.NoError(t, err)
	assert.Equal(t, "Object > Animal > Dog > Puppy\n", out)

	_, err = run(t, cfg, "chain", "Cat")
	assert.ErrorContains(t, err, "class not found")
}

func TestInvoke(t *testing.T) {
	cfg := writeConfig(t, "samples = true\n")

	out, err := run(t, cfg, "invoke", "Calculator", "add", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(t, cfg, "invoke", "Dog", "learn", "sit", "--ctor-args", "7")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)

	_, err = run(t, cfg, "invoke", "Calculator", "recall")
	assert.ErrorIs(t, err, investigator.ErrInaccessible)
}

func TestElevate(t *testing.T) {
	cfg := writeConfig(t, "samples = true\n")

	out, err := run(t, cfg, "elevate", "Calculator", "secret")
	require.NoError(t, err)
	assert.Equal(t, "\"you found the secret\"\n", out)

	out, err = run(t, cfg, "elevate", "Calculator", "square", "long:4")
	require.NoError(t, err)
	assert.Equal(t, "16\n", out)

	_, err = run(t, cfg, "elevate", "Calculator", "square", "--params", "int", "4")
	assert.ErrorIs(t, err, investigator.ErrNoSuchMember)
}

func TestCreate(t *testing.T) {
	cfg := writeConfig(t, "samples = true\n")

	out, err := run(t, cfg, "create", "Dog", "5")
	require.NoError(t, err)
	assert.Equal(t, "Dog{legs=4, name=dog, tricks=5}\n", out)

	// Animal only declares a protected constructor.
	_, err = run(t, cfg, "create", "Animal")
	assert.ErrorIs(t, err, investigator.ErrNoSuchMember)
}

func TestInspect(t *testing.T) {
	cfg := writeConfig(t, "samples = true\n")

	out, err := run(t, cfg, "inspect", "Dog", "-o", "json")
	require.NoError(t, err)
	var summary investigator.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "jprobe.samples.Dog", summary.Class)
	assert.Equal(t, "Animal", summary.Parent)
	assert.True(t, summary.ParentAbstract)
	assert.Equal(t, 3, summary.ConstructorCount)

	out, err = run(t, cfg, "inspect", "Dog")
	require.NoError(t, err)
	assert.Contains(t, out, "jprobe.samples.Dog")
	assert.Contains(t, out, "Fields across chain")
	assert.Contains(t, out, "private String whisper()")

	_, err = run(t, cfg, "inspect", "Dog", "-o", "html")
	assert.ErrorIs(t, err, config.ErrInvalidOutput)
}

func TestClasses(t *testing.T) {
	catalog, err := filepath.Abs("../internal/catalog/testdata/shapes.toml")
	require.NoError(t, err)
	cfg := writeConfig(t, fmt.Sprintf("samples = false\ncatalogs = [%q]\noutput = \"json\"\n", catalog))

	out, err := run(t, cfg, "classes")
	require.NoError(t, err)
	var rows []classRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Equal(t, catalog, row.Source)
	}

	out, err = run(t, cfg, "chain", "Square")
	require.NoError(t, err)
	assert.Equal(t, "Object->Shape->Square\n", out)

	out, err = run(t, cfg, "classes", "--source", "samples")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "output = \"yaml\"\n")
	_, err := run(t, cfg, "classes")
	assert.ErrorIs(t, err, config.ErrInvalidOutput)

	_, err = run(t, writeConfig(t, ""), "classes", "--log-level", "loud")
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestReloadClassesRereadsConfig(t *testing.T) {
	cfg := writeConfig(t, "samples = true\n")
	_, err := run(t, cfg, "classes")
	require.NoError(t, err)
	_, err = classes.Lookup("Calculator")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg, []byte("samples = false\n"), 0644))
	require.NoError(t, reloadClasses(context.Background()))
	assert.False(t, appConfig.Samples)
	_, err = classes.Lookup("Calculator")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(cfg, []byte("output = \"yaml\"\n"), 0644))
	assert.ErrorIs(t, reloadClasses(context.Background()), config.ErrInvalidOutput)
	assert.False(t, appConfig.Samples)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "ignored.toml", "version")
	require.NoError(t, err)
	assert.Equal(t, "jprobe version dev\n", out)
}
