package selection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/warpdl/cookiegetter/pkg/cookies"
)

const (
	selectionFileName = "selection.json"
	selectionFileMode = 0600
)

// FileStore keeps the selection in configDir/selection.json with 0600
// permissions.
type FileStore struct {
	configDir string
}

var (
	fileReadFile = os.ReadFile
	fileRemove   = os.Remove
	fileRename   = os.Rename
	fileMkdirAll = os.MkdirAll
	fileTempFile = os.CreateTemp
)

func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

func (f *FileStore) path() string {
	return filepath.Join(f.configDir, selectionFileName)
}

// Save writes the selection atomically through a temp file and rename.
func (f *FileStore) Save(config cookies.BrowserConfig) error {
	data, err := encode(config)
	if err != nil {
		return err
	}
	if err := fileMkdirAll(f.configDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmpFile, err := fileTempFile(f.configDir, ".selection.json.tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.WriteString(data); err != nil {
		tmpFile.Close()
		fileRemove(tmpPath)
		return fmt.Errorf("write selection: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		fileRemove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, selectionFileMode); err != nil {
		fileRemove(tmpPath)
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := fileRename(tmpPath, f.path()); err != nil {
		fileRemove(tmpPath)
		return fmt.Errorf("rename selection file: %w", err)
	}
	return nil
}

func (f *FileStore) Load() (cookies.BrowserConfig, error) {
	data, err := fileReadFile(f.path())
	if errors.Is(err, fs.ErrNotExist) {
		return cookies.BrowserConfig{}, ErrNoSelection
	}
	if err != nil {
		return cookies.BrowserConfig{}, err
	}
	return decode(string(data))
}

func (f *FileStore) Clear() error {
	err := fileRemove(f.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
