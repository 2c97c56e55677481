package file

import (
	"context"
	"log/slog"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
	"github.com/Cyclone1070/hostos/internal/host/errutil"
)

// ReadFile returns the entire content of the file at path. It fails rather
// than return a partial buffer; every failure is an *errutil.Error that
// carries path and kind.
func (g *Gateway) ReadFile(path string) (buffer.Buffer, error) {
	buf, err := g.readFile(path)
	if err != nil {
		g.logger.Debug("read failed", "path", path, "error", err)
		return buffer.Buffer{}, err
	}

	if g.logger.Enabled(context.Background(), slog.LevelDebug) {
		g.logger.Debug("read file", "path", path, "bytes", buf.Len(), "digest", buf.Digest())
	}
	return buf, nil
}

func (g *Gateway) readFile(path string) (buffer.Buffer, error) {
	if err := validatePath(path); err != nil {
		return buffer.Buffer{}, errutil.WithKind(OpReadFile, path, errutil.InvalidTarget, err)
	}

	// Get file info (single stat syscall)
	info, err := g.fileOps.Stat(path)
	if err != nil {
		return buffer.Buffer{}, errutil.New(OpReadFile, path, err)
	}

	if info.IsDir() {
		return buffer.Buffer{}, errutil.WithKind(OpReadFile, path, errutil.InvalidTarget, errutil.ErrIsDirectory)
	}
	if !info.Mode().IsRegular() {
		return buffer.Buffer{}, errutil.WithKind(OpReadFile, path, errutil.InvalidTarget, errutil.ErrNotRegular)
	}

	content, err := g.fileOps.ReadAll(path)
	if err != nil {
		return buffer.Buffer{}, errutil.New(OpReadFile, path, err)
	}

	return buffer.New(content), nil
}
