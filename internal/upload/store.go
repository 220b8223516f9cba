package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrUnsupportedType = errors.New("only image files are allowed")
	ErrFileTooLarge    = errors.New("photo is too large")
)

// Result describes a stored photo: the public path recorded on the employee
// and the uploaded file's original name.
type Result struct {
	Path         string
	OriginalName string
}

// CleanupJob asks for an orphaned photo to be removed. It travels over the
// cleanup queue when record creation fails after a successful write.
type CleanupJob struct {
	Path string `json:"path"`
}

// Store writes uploaded photos to a local directory served at publicPath.
// Stored names are <millisecond-timestamp>-<random><ext>, so the original
// filename never touches the filesystem and concurrent uploads do not collide.
type Store struct {
	dir        string
	publicPath string
	maxSize    int64
	allowed    map[string]struct{}
}

func NewStore(dir, publicPath string, maxSize int64, allowedTypes []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}

	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	return &Store{
		dir:        dir,
		publicPath: publicPath,
		maxSize:    maxSize,
		allowed:    allowed,
	}, nil
}

// Save validates and persists a single uploaded file. Either the file is fully
// written and its public path returned, or nothing is left on disk.
func (s *Store) Save(fh *multipart.FileHeader) (Result, error) {
	contentType := fh.Header.Get("Content-Type")
	if mediaType, _, ok := strings.Cut(contentType, ";"); ok {
		contentType = mediaType
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := s.allowed[contentType]; !ok {
		return Result{}, ErrUnsupportedType
	}

	if fh.Size > s.maxSize {
		return Result{}, ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return Result{}, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), filepath.Ext(fh.Filename))
	target := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Result{}, fmt.Errorf("create photo file failed: %w", err)
	}

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize)); err != nil {
		_ = dst.Close()
		_ = os.Remove(target)
		return Result{}, fmt.Errorf("write photo file failed: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(target)
		return Result{}, fmt.Errorf("close photo file failed: %w", err)
	}

	return Result{
		Path:         path.Join(s.publicPath, name),
		OriginalName: fh.Filename,
	}, nil
}

// Remove deletes a stored photo by its public path. Only the basename is
// honored, so a crafted path cannot reach outside the upload directory.
func (s *Store) Remove(storedPath string) error {
	name := filepath.Base(storedPath)
	if name == "." || name == string(filepath.Separator) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove photo file failed: %w", err)
	}
	return nil
}
