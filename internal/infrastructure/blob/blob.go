package blob

import (
	"context"
	"fmt"

	"agencydesk/internal/application/common"
	"agencydesk/internal/shared/config"
	"agencydesk/internal/shared/logger"
)

// New builds the backend named by cfg.Driver.
func New(ctx context.Context, cfg config.BlobConfig, log logger.Interface) (common.BlobStore, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinioStore(ctx, cfg, log)
	case "local", "":
		return NewLocalStore(cfg.Dir, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported blob driver %q", cfg.Driver)
	}
}
