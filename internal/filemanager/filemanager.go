package filemanager

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"devfactory/internal/logging"
	"devfactory/pkg/fileops"
)

// DefaultMaxFileSize caps a single document read.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// ErrNotFound is returned by ReadFile for a name that does not exist in the root.
var ErrNotFound = errors.New("file not found")

// FileManager gives read-only access to one docs directory.
type FileManager struct {
	dir         string
	root        *os.Root
	logger      *logging.AppLogger
	maxFileSize int64
}

// NewFileManager opens dir for reading. Close releases the underlying root.
func NewFileManager(dir string, logger *logging.AppLogger) (*FileManager, error) {
	if logger == nil {
		logger = logging.GetDefault()
	}
	root, err := OpenDocsRoot(dir, logger)
	if err != nil {
		return nil, err
	}
	return &FileManager{
		dir:         root.Name(),
		root:        root,
		logger:      logger,
		maxFileSize: DefaultMaxFileSize,
	}, nil
}

// GetDocsDir returns the directory the manager was opened on.
func (fm *FileManager) GetDocsDir() string {
	return fm.dir
}

// SetMaxFileSize overrides the per-file read limit.
func (fm *FileManager) SetMaxFileSize(limit int64) {
	fm.maxFileSize = limit
}

// ReadFile reads one file by its name relative to the root. A missing file
// is reported as ErrNotFound so callers can tell it apart from I/O failures.
func (fm *FileManager) ReadFile(name string) ([]byte, error) {
	f, err := fm.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, name)
	}
	if err := fileops.ValidateSizeLimit(name, info.Size(), fm.maxFileSize); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	fm.logger.Debug("Read docs file", "name", name, "bytes", len(data))
	return data, nil
}

func (fm *FileManager) Close() error {
	return fm.root.Close()
}
