package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToArchived moves a processed source out of the inbox. An existing
// archive entry of the same name is kept; the new one gets a timestamp.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return "", fmt.Errorf("create archived dir: %w", err)
	}

	filename := filepath.Base(path)
	destPath := filepath.Join(p.cfg.Paths.Archived, filename)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		stamped := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(filename, ext), time.Now().Format("20060102-150405"), ext)
		destPath = filepath.Join(p.cfg.Paths.Archived, stamped)
	}

	p.logger.Info(ctx, "Archiving source: %s -> %s", path, destPath)
	if err := os.Rename(path, destPath); err != nil {
		return "", fmt.Errorf("move to archived: %w", err)
	}
	return destPath, nil
}

// cleanupTempDir removes a work directory, logs warning if it fails.
func (p *implProcessor) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
