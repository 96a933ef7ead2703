package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

// writeFile creates a file with parent directories under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.md", "hello")
	writeFile(t, root, "guides/setup.md", "install it")

	loader := NewLoader(Static(nil), Config{})
	docs, err := loader.Load(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "guides/setup.md", docs[0].ID)
	assert.Equal(t, "install it", docs[0].Content)
	assert.Equal(t, "notes.md", docs[1].ID)
	assert.Equal(t, "hello", docs[1].Content)
	assert.False(t, docs[0].Truncated)
}

func TestLoader_Load_ExcludesByRule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.md", "hello")
	writeFile(t, root, ".env", "SECRET=1")

	loader := NewLoader(Static([]domain.ExclusionRule{".env"}), Config{})
	docs, err := loader.Load(context.Background(), root)
	require.NoError(t, err)

	// Exactly one document; the excluded file never appears.
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.md", docs[0].ID)
	assert.Equal(t, "hello", docs[0].Content)
}

func TestLoader_Load_ExcludesDirectorySubtree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "secrets/key.txt", "shh")
	writeFile(t, root, "public/readme.md", "ok")

	loader := NewLoader(Static([]domain.ExclusionRule{"secrets/"}), Config{})
	docs, err := loader.Load(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "public/readme.md", docs[0].ID)
}

func TestLoader_Load_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.md", "b")
	writeFile(t, root, "a.md", "a")
	writeFile(t, root, "sub/c.md", "c")

	loader := NewLoader(Static(nil), Config{})

	first, err := loader.Load(context.Background(), root)
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "a.md", first[0].ID)
	assert.Equal(t, "b.md", first[1].ID)
	assert.Equal(t, "sub/c.md", first[2].ID)
}

func TestLoader_Load_MaxDocuments(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 7; i++ {
		writeFile(t, root, fmt.Sprintf("doc-%02d.md", i), "content")
	}

	loader := NewLoader(Static(nil), Config{MaxDocuments: 3})
	docs, err := loader.Load(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, "doc-00.md", docs[0].ID)
	assert.Equal(t, "doc-01.md", docs[1].ID)
	assert.Equal(t, "doc-02.md", docs[2].ID)
}

func TestLoader_Load_CapCountsAfterExclusion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.env", "x")
	writeFile(t, root, "b.md", "b")
	writeFile(t, root, "c.md", "c")

	loader := NewLoader(Static([]domain.ExclusionRule{".env"}), Config{MaxDocuments: 2})
	docs, err := loader.Load(context.Background(), root)
	require.NoError(t, err)

	// The excluded file does not consume the document budget.
	require.Len(t, docs, 2)
	assert.Equal(t, "b.md", docs[0].ID)
	assert.Equal(t, "c.md", docs[1].ID)
}

func TestLoader_Load_TruncatesOversizedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.md", strings.Repeat("x", 100))
	writeFile(t, root, "small.md", "tiny")

	loader := NewLoader(Static(nil), Config{MaxDocumentChars: 40})
	docs, err := loader.Load(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "big.md", docs[0].ID)
	assert.True(t, docs[0].Truncated)
	assert.Len(t, docs[0].Content, 40)

	assert.False(t, docs[1].Truncated)
	assert.Equal(t, "tiny", docs[1].Content)
}

func TestLoader_Load_EmptyDirectory(t *testing.T) {
	loader := NewLoader(Static(nil), Config{})

	docs, err := loader.Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}

func TestLoader_Load_MissingBasePath(t *testing.T) {
	loader := NewLoader(Static(nil), Config{})

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, domain.ErrLibraryPath)
}

func TestLoader_Load_BasePathIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.md", "x")

	loader := NewLoader(Static(nil), Config{})
	_, err := loader.Load(context.Background(), filepath.Join(root, "file.md"))
	assert.ErrorIs(t, err, domain.ErrLibraryPath)
}

func TestLoader_Load_VisitCeiling(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, root, fmt.Sprintf("doc-%02d.md", i), "x")
	}

	loader := NewLoader(Static(nil), Config{MaxVisited: 5})
	_, err := loader.Load(context.Background(), root)
	assert.ErrorIs(t, err, domain.ErrLoadTimeout)
}

func TestLoader_Load_ContextCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc.md", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(Static(nil), Config{})
	_, err := loader.Load(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_Load_RuleSourceErrorFailsClosed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc.md", "x")

	// An unreadable rule document must not result in an unfiltered load.
	rules := NewFileRules(filepath.Join(root, "doc.md", "impossible"))
	loader := NewLoader(rules, Config{})

	_, err := loader.Load(context.Background(), root)
	assert.Error(t, err)
}

func TestLoader_Load_SkipsIrregularFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real.md", "ok")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.md"), filepath.Join(root, "link.md")))

	loader := NewLoader(Static(nil), Config{})
	docs, err := loader.Load(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "real.md", docs[0].ID)
}
