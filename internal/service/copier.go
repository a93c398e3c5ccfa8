package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// FileCopier copies files on the local filesystem, creating target
// directories as needed.
type FileCopier struct{}

// NewFileCopier returns a filesystem-backed Copier.
func NewFileCopier() *FileCopier {
	return &FileCopier{}
}

// Copy implements Copier.
func (FileCopier) Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
