package dumpfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"popcompare/internal/logger"
	"popcompare/internal/models"
)

// Reader turns one dump file into decompressed text
type Reader interface {
	// Extension returns the file suffix the reader handles (e.g. ".xml.gz")
	Extension() string

	// ReadText reads and decompresses the file at path
	ReadText(ctx context.Context, path string) (string, error)
}

// ArgumentError reports a file designation no reader supports. It is raised
// before any dump text reaches the parser.
type ArgumentError struct {
	Path   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid data dump file %q: %s", e.Path, e.Reason)
}

// Manager dispatches dump files to readers by extension
type Manager struct {
	readers map[string]Reader
}

// NewManager creates a manager with the plain, gzip and zstd readers registered
func NewManager() *Manager {
	m := &Manager{
		readers: make(map[string]Reader),
	}
	m.RegisterReader(PlainReader{})
	m.RegisterReader(GzipReader{})
	m.RegisterReader(ZstdReader{})
	return m
}

// RegisterReader adds a reader, replacing any reader for the same extension
func (m *Manager) RegisterReader(reader Reader) {
	m.readers[strings.ToLower(reader.Extension())] = reader
}

// Extensions lists the supported extensions, longest first
func (m *Manager) Extensions() []string {
	exts := make([]string, 0, len(m.readers))
	for ext := range m.readers {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if len(exts[i]) != len(exts[j]) {
			return len(exts[i]) > len(exts[j])
		}
		return exts[i] < exts[j]
	})
	return exts
}

// GetReader retrieves the reader whose extension path ends with
func (m *Manager) GetReader(path string) (Reader, error) {
	lower := strings.ToLower(path)
	for _, ext := range m.Extensions() {
		if strings.HasSuffix(lower, ext) {
			return m.readers[ext], nil
		}
	}
	return nil, &ArgumentError{
		Path:   path,
		Reason: fmt.Sprintf("must end with one of %s", strings.Join(m.Extensions(), ", ")),
	}
}

// ReadText reads path using the matching reader
func (m *Manager) ReadText(ctx context.Context, path string) (string, error) {
	reader, err := m.GetReader(path)
	if err != nil {
		return "", err
	}

	logger.L().Debug("dump_read_start", "path", path, "ext", reader.Extension())
	text, err := reader.ReadText(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	logger.L().Debug("dump_read_done", "path", path, "bytes", len(text))
	return text, nil
}

// Path builds the conventional location of a dump: <dir>/<label>-<kind><ext>
func Path(dir, label string, kind models.DumpKind, ext string) (string, error) {
	if err := models.ValidateDumpKind(kind); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", label, kind, ext)), nil
}
