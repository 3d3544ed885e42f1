package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	reg, err := Load(context.Background(), config.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, len(meta.Builtins())+len(samples.Classes()), reg.Count())

	c, err := reg.Lookup("Calculator")
	require.NoError(t, err)
	assert.Same(t, samples.Calculator, c)
}

func TestLoadCatalogsInOrder(t *testing.T) {
	base := writeCatalog(t, "base.toml", `
[[class]]
name = "app.Base"
modifiers = ["public", "abstract"]
`)
	derived := writeCatalog(t, "derived.toml", `
[[class]]
name = "app.Derived"
extends = "Base"
implements = ["Named"]
  [[class.method]]
  name = "name"
  modifiers = ["public"]
  returns = "String"
  constant = "derived"
`)

	cfg := config.DefaultConfig()
	cfg.Catalogs = []string{base, derived}
	reg, err := Load(context.Background(), cfg, nil)
	require.NoError(t, err)

	info, ok := reg.GetByName("app.Derived")
	require.True(t, ok)
	assert.Equal(t, derived, info.Source)
	assert.Equal(t, "Base", info.Class.Superclass().SimpleName())
	assert.True(t, samples.Named.IsAssignableFrom(info.Class))
}

func TestLoadWithoutSamples(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Samples = false
	cfg.Catalogs = []string{writeCatalog(t, "x.toml", `
[[class]]
name = "app.X"
extends = "Dog"
`)}

	_, err := Load(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "unknown type Dog")
}

func TestLoadDuplicateAcrossCatalogs(t *testing.T) {
	content := "[[class]]\nname = \"app.Twice\"\n"
	cfg := config.DefaultConfig()
	cfg.Catalogs = []string{writeCatalog(t, "a.toml", content), writeCatalog(t, "b.toml", content)}

	_, err := Load(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "class already registered")
}

func TestReloadReplacesCatalogClasses(t *testing.T) {
	path := writeCatalog(t, "app.toml", "[[class]]\nname = \"app.Old\"\n")
	cfg := config.DefaultConfig()
	cfg.Catalogs = []string{path}
	reg, err := Load(context.Background(), cfg, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[[class]]\nname = \"app.New\"\n"), 0o644))
	require.NoError(t, Reload(context.Background(), reg, cfg, nil))

	_, ok := reg.GetByName("app.Old")
	assert.False(t, ok)
	info, ok := reg.GetByName("app.New")
	require.True(t, ok)
	assert.Equal(t, path, info.Source)
	assert.Equal(t, len(meta.Builtins())+len(samples.Classes())+1, reg.Count())

	c, err := reg.Lookup("Calculator")
	require.NoError(t, err)
	assert.Same(t, samples.Calculator, c)
}

func TestFailedReloadKeepsRegistry(t *testing.T) {
	path := writeCatalog(t, "app.toml", "[[class]]\nname = \"app.Kept\"\n")
	cfg := config.DefaultConfig()
	cfg.Catalogs = []string{path}
	reg, err := Load(context.Background(), cfg, nil)
	require.NoError(t, err)
	before := reg.Count()

	require.NoError(t, os.WriteFile(path, []byte("[[class]]\nname = \"app.Broken\"\nextends = \"Missing\"\n"), 0o644))
	assert.Error(t, Reload(context.Background(), reg, cfg, nil))

	_, ok := reg.GetByName("app.Kept")
	assert.True(t, ok)
	assert.Equal(t, before, reg.Count())
}
