package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
	"github.com/Cyclone1070/hostos/internal/host/errutil"
	"github.com/Cyclone1070/hostos/internal/host/service/fs"
)

// WriteFile replaces the entire content of the file at path, creating it if
// needed. Text content is encoded with the gateway's UTF-8 policy. Parent
// directories are never created. With atomic writes enabled (the default),
// readers observe either the old or the new content, and concurrent writers
// to one path resolve as last writer wins.
func (g *Gateway) WriteFile(path string, content Content) error {
	written, target, err := g.writeFile(path, content)
	if err != nil {
		g.logger.Debug("write failed", "path", path, "content", content.Kind(), "error", err)
		return err
	}

	if g.logger.Enabled(context.Background(), slog.LevelDebug) {
		g.logger.Debug("wrote file", "path", path, "target", target, "content", content.Kind(),
			"bytes", written.Len(), "digest", written.Digest())
	}
	return nil
}

func (g *Gateway) writeFile(path string, content Content) (buffer.Buffer, string, error) {
	if err := validatePath(path); err != nil {
		return buffer.Buffer{}, "", errutil.WithKind(OpWriteFile, path, errutil.InvalidTarget, err)
	}

	data, err := content.Encode(g.policy)
	if err != nil {
		return buffer.Buffer{}, "", errutil.WithKind(OpWriteFile, path, errutil.EncodingError, err)
	}

	target, err := g.fileOps.ResolveTarget(path)
	if err != nil {
		if errors.Is(err, fs.ErrTooManyLinks) {
			return buffer.Buffer{}, "", errutil.WithKind(OpWriteFile, path, errutil.InvalidTarget, err)
		}
		return buffer.Buffer{}, "", errutil.New(OpWriteFile, path, err)
	}

	if err := g.checkParent(path, target); err != nil {
		return buffer.Buffer{}, "", err
	}

	perm, err := g.targetMode(path, target)
	if err != nil {
		return buffer.Buffer{}, "", err
	}

	if g.atomic {
		err = g.fileOps.WriteFileAtomic(target, data.Bytes(), perm)
	} else {
		err = g.fileOps.WriteFileInPlace(target, data.Bytes(), perm)
	}
	if err != nil {
		return buffer.Buffer{}, "", errutil.New(OpWriteFile, path, err)
	}

	return data, target, nil
}

// checkParent requires the directory holding target to exist. Errors
// report the caller's path.
func (g *Gateway) checkParent(path, target string) error {
	parent := filepath.Dir(target)

	info, err := g.fileOps.Stat(parent)
	if err != nil {
		if errutil.Classify(err) == errutil.NotFound {
			return errutil.WithKind(OpWriteFile, path, errutil.NotFound,
				fmt.Errorf("%w: %s", errutil.ErrNoParent, parent))
		}
		return errutil.New(OpWriteFile, path, err)
	}
	if !info.IsDir() {
		return errutil.WithKind(OpWriteFile, path, errutil.InvalidTarget,
			fmt.Errorf("%w: %s", errutil.ErrParentNotDir, parent))
	}
	return nil
}

// targetMode returns the permissions to write with: the existing file's
// when overwriting, the configured default otherwise.
func (g *Gateway) targetMode(path, target string) (os.FileMode, error) {
	info, err := g.fileOps.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return g.fileMode, nil
		}
		return 0, errutil.New(OpWriteFile, path, err)
	}

	if info.IsDir() {
		return 0, errutil.WithKind(OpWriteFile, path, errutil.InvalidTarget, errutil.ErrIsDirectory)
	}
	if !info.Mode().IsRegular() {
		return 0, errutil.WithKind(OpWriteFile, path, errutil.InvalidTarget, errutil.ErrNotRegular)
	}
	return info.Mode().Perm(), nil
}
