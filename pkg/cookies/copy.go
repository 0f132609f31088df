package cookies

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// SafeCopy copies an SQLite cookie database (and its -wal and -shm
// companions if they exist) from fs to a fresh OS temp directory, so the
// browser that owns the database keeps its locks and the reader sees a
// consistent snapshot.
//
// Returns the path of the copied database and a cleanup function removing
// the temp directory. The caller MUST call cleanup when done.
func SafeCopy(fs afero.Fs, srcPath string) (copyPath string, cleanup func(), err error) {
	info, err := fs.Stat(srcPath)
	if err != nil {
		return "", nil, fmt.Errorf("cookie store not found: %s: %w", srcPath, err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%s is a directory, expected a cookie database", srcPath)
	}
	if info.Size() == 0 {
		return "", nil, fmt.Errorf("cookie store at %s is empty", srcPath)
	}

	tempDir, err := os.MkdirTemp("", "cookiegetter-*")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create temp directory: %w", err)
	}
	cleanup = func() {
		os.RemoveAll(tempDir)
	}

	baseName := filepath.Base(srcPath)
	copyPath = filepath.Join(tempDir, baseName)
	if err := copyFromFs(fs, srcPath, copyPath); err != nil {
		cleanup()
		return "", nil, err
	}

	// Companions are best-effort: a missing WAL only loses uncheckpointed rows.
	for _, suffix := range []string{"-wal", "-shm"} {
		companion := srcPath + suffix
		if _, err := fs.Stat(companion); err == nil {
			_ = copyFromFs(fs, companion, copyPath+suffix)
		}
	}

	return copyPath, cleanup, nil
}

func copyFromFs(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("cannot copy %s: %w", src, err)
	}
	return out.Close()
}
