package platform

//go:generate go run go.uber.org/mock/mockgen -source=./snapshot.go -destination=./mocks/snapshot_mock.go -package=mocks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"staysync/config"
	"staysync/infras/s3"
	"staysync/internal/domains/booking/model"
	"staysync/shared/timezone"
)

const snapshotDirectory = "snapshots"

// SnapshotStore keeps the diagnostic screenshots taken when a blocking
// attempt dies mid-flow. With a bucket configured the image goes to S3;
// otherwise it lands next to the process so local runs stay debuggable.
type SnapshotStore interface {
	Save(ctx context.Context, platform model.Platform, image []byte) (location string, err error)
}

type snapshotStoreImpl struct {
	cfg     *config.Config
	storage s3.S3
}

func NewSnapshotStore(cfg *config.Config, storage s3.S3) SnapshotStore {
	return &snapshotStoreImpl{
		cfg:     cfg,
		storage: storage,
	}
}

func (s *snapshotStoreImpl) Save(ctx context.Context, platform model.Platform, image []byte) (string, error) {
	fileName := fmt.Sprintf("error_%s_%d.png", platform, timezone.Now().Unix())

	if s.cfg.Snapshots.Bucket != "" {
		url, err := s.storage.UploadFileBytes(ctx, snapshotDirectory, fileName, "image/png", image)
		if err != nil {
			return "", fmt.Errorf("failed to store snapshot: %w", err)
		}

		return url, nil
	}

	path := filepath.Join(s.cfg.Snapshots.LocalDir, fileName)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return path, nil
}
