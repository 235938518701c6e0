// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirSource serves ranges from a mirror directory written by Downloader, one
// <PREFIX>.txt file per range. It allows breach checks without network access.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	return &DirSource{dir: dir}, nil
}

func rangeFileName(dir, prefix string) string {
	return filepath.Join(dir, prefix+".txt")
}

func (d *DirSource) Range(ctx context.Context, prefix string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, classify(err)
	}

	// Also keeps the prefix from walking out of the mirror.
	if !validPrefix(prefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	body, err := os.ReadFile(rangeFileName(d.dir, prefix))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s is not in the mirror", ErrRangeNotFound, prefix)
	}

	return body, err
}
