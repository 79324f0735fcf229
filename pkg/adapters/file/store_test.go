package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/adapters/file"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

// Ensure Store implements DescriptorStore
var _ ports.DescriptorStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunDescriptorStoreContract(t, store)
}

func TestFileStore_HandWrittenJSON(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	raw := `{"root":0,"nodes":[{"type":"constant","args":["failure"]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manual.json"), []byte(raw), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"manual"}, names)

	desc, err := store.Load(ctx, "manual")
	require.NoError(t, err)
	assert.Equal(t, "manual", desc.Name)

	// Saving replaces the JSON copy with YAML.
	require.NoError(t, store.Save(ctx, "manual", desc))
	_, err = os.Stat(filepath.Join(dir, "manual.json"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Delete(ctx, "manual"))
	_, err = store.Load(ctx, "manual")
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)

	assert.Error(t, store.Save(ctx, "", desc))
	_, err = store.Load(ctx, "")
	assert.Error(t, err)
}

func TestNewStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".behaviortree", "trees"), file.NewStore("").BasePath)
}
