package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	sessionout "scrub/internal/modules/session/port/out"
	"scrub/internal/platform/clock"
	apperrors "scrub/internal/platform/errors"
)

type FilePhotoStore struct {
	photosPath string
	clock      clock.Clock
}

func NewFilePhotoStore(photosPath string, clk clock.Clock) sessionout.PhotoStore {
	return &FilePhotoStore{photosPath: photosPath, clock: clk}
}

// Import copies the source photo under the managed photos directory so a
// session's "before" shot survives the original file moving away.
func (s *FilePhotoStore) Import(ctx context.Context, areaID, srcPath string) (string, error) {
	if srcPath == "" {
		return "", apperrors.ErrPhotoRequired
	}
	src, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrPhotoRequired, srcPath)
		}
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat photo: %w", err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%w: empty file %s", apperrors.ErrInvalidPhotoData, srcPath)
	}

	dir := filepath.Join(s.photosPath, areaID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s", s.clock.Now().UTC().Format("20060102-150405"), filepath.Base(srcPath))
	dst := filepath.Join(dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create photo copy: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("copy photo: %w", err)
	}
	return dst, nil
}
