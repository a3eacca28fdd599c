package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/anydocs"
)

const tmpSuffix = ".tmp"

// Ensure FileStore implements anydocs.PageStore at compile time.
var _ anydocs.PageStore = (*FileStore)(nil)

// FileStore implements anydocs.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+tmpSuffix)
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page into the pending directory. Page names must be plain
// Markdown file names without directory components.
func (s *FileStore) Save(ctx context.Context, page *anydocs.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if page.Name == "" || page.Name != filepath.Base(page.Name) || page.Name == ".." ||
		!strings.HasSuffix(page.Name, PageExt) {
		return anydocs.Errorf(anydocs.EINVALID, "invalid page name %q", page.Name)
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), page.Name), []byte(FormatPage(page)), 0644)
}

// FormatPage returns the stored form of a page. A source URL is recorded
// as a "**Source:**" line under the first heading unless the content
// already carries one.
func FormatPage(page *anydocs.Page) string {
	content := page.Content
	if page.SourceURL == "" || strings.Contains(content, "**Source:**") {
		return content
	}

	source := "**Source:** " + page.SourceURL
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			out := make([]string, 0, len(lines)+2)
			out = append(out, lines[:i+1]...)
			out = append(out, "", source)
			out = append(out, lines[i+1:]...)
			return strings.Join(out, "\n")
		}
	}
	return source + "\n\n" + content
}

// Commit replaces the final directory with the pending one.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending directory.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
