// Package file implements the readFile and writeFile host bindings: whole
// file reads into a buffer.Buffer and whole file writes from a Buffer or
// text. Calls are synchronous, uncached and never retried.
package file

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Cyclone1070/hostos/internal/config"
	"github.com/Cyclone1070/hostos/internal/host/buffer"
	"github.com/Cyclone1070/hostos/internal/host/errutil"
)

// fileSystem defines the filesystem operations the gateway needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadAll(path string) ([]byte, error)
	ResolveTarget(path string) (string, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	WriteFileInPlace(path string, content []byte, perm os.FileMode) error
}

// Gateway bridges the host filesystem and buffer.Buffer.
type Gateway struct {
	fileOps  fileSystem
	policy   buffer.Policy
	atomic   bool
	fileMode os.FileMode
	logger   *slog.Logger
}

// NewGateway creates a Gateway with injected dependencies. A nil logger
// discards log output.
func NewGateway(fileOps fileSystem, cfg *config.Config, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{
		fileOps:  fileOps,
		policy:   cfg.Host.Policy(),
		atomic:   cfg.Host.AtomicWrite,
		fileMode: cfg.Host.Mode(),
		logger:   logger,
	}
}

// Policy returns the text policy used for Text content.
func (g *Gateway) Policy() buffer.Policy {
	return g.policy
}

func validatePath(path string) error {
	if path == "" {
		return errutil.ErrPathRequired
	}
	if strings.IndexByte(path, 0) >= 0 {
		return errutil.ErrMalformedPath
	}
	return nil
}
