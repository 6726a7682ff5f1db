package codestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/aibridge/internal/domain"
)

func TestSaveLoadRemove(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save("spin_cube", "import bpy\n")
	require.NoError(t, err)
	assert.FileExists(t, path)

	code, err := store.Load("spin_cube")
	require.NoError(t, err)
	assert.Equal(t, "import bpy\n", code)

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"spin_cube"}, names)

	require.NoError(t, store.Remove("spin_cube"))
	_, err = store.Load("spin_cube")
	require.ErrorIs(t, err, domain.ErrCodeNotFound)
}

func TestExtractCodeBlocks(t *testing.T) {
	text := "Sure, here you go:\n```python\nimport bpy\nprint(1)\n```\nand also\n```\nprint(2)\n```\ndone"

	blocks := ExtractCodeBlocks(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, "import bpy\nprint(1)", blocks[0])
	assert.Equal(t, "print(2)", blocks[1])
}

func TestExtractSingleCodeBlock(t *testing.T) {
	body, err := ExtractSingleCodeBlock("```python\nimport bpy\n```")
	require.NoError(t, err)
	assert.Equal(t, "import bpy", body)

	_, err = ExtractSingleCodeBlock("no code here at all")
	require.ErrorIs(t, err, domain.ErrNoCodeBlock)

	_, err = ExtractSingleCodeBlock("```\na\n```\n```\nb\n```")
	require.ErrorIs(t, err, domain.ErrNoCodeBlock)
}
