// Package blob opens the configured file-blob backend for saved plans and
// exported reports.
package blob

import (
	"context"
	"fmt"

	"gsep-planner/internal/blob/core"
	"gsep-planner/internal/blob/fs"
	"gsep-planner/internal/blob/memory"
	"gsep-planner/internal/blob/s3"
)

type Config struct {
	Driver core.Driver
	FSRoot string
	S3     s3.Config
}

// Open returns the backend named by cfg.Driver; fs when empty.
func Open(ctx context.Context, cfg Config) (core.Store, error) {
	switch cfg.Driver {
	case "", core.DriverFilesystem:
		return fs.New(cfg.FSRoot)
	case core.DriverS3:
		return s3.New(ctx, cfg.S3)
	case core.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
