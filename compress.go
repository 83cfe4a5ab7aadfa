/*
 * compress.go, part of mdinit.
 *
 * Copyright 2026 The mdinit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Files whose names end in .gz or .zst are transparently (de)compressed with gzip or zstd.

//closers closes the decompressor first, then the file.
type closers struct {
	io.Reader
	closefs []func() error
}

func (c *closers) Close() error {
	var err error
	for _, f := range c.closefs {
		if err2 := f(); err2 != nil && err == nil {
			err = err2
		}
	}
	return err
}

//zstd.Decoder.Close doesn't return an error, so it can't be an io.Closer by itself.
type zstdql struct {
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}

func compression(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".gz"):
		return "gz"
	case strings.HasSuffix(n, ".zst"):
		return "zst"
	default:
		return ""
	}
}

//OpenFile opens the file name for reading, decompressing it if its
//extension is .gz or .zst.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, CError{err.Error(), []string{"os.Open", "OpenFile"}}
	}
	switch compression(name) {
	case "gz":
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{"Can't read gzip stream " + err.Error(), []string{"gzip.NewReader", "OpenFile"}}
		}
		return &closers{g, []func() error{g.Close, f.Close}}, nil
	case "zst":
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{"Can't read zstd stream " + err.Error(), []string{"zstd.NewReader", "OpenFile"}}
		}
		zq := zstdql{z}
		return &closers{zq, []func() error{zq.Close, f.Close}}, nil
	default:
		return f, nil
	}
}

type wclosers struct {
	io.Writer
	closefs []func() error
}

func (c *wclosers) Close() error {
	var err error
	for _, f := range c.closefs {
		if err2 := f(); err2 != nil && err == nil {
			err = err2
		}
	}
	return err
}

//CreateFile creates the file name for writing, compressing it if its
//extension is .gz or .zst. The returned WriteCloser must be closed
//for the compressed stream to be complete.
func CreateFile(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, CError{err.Error(), []string{"os.Create", "CreateFile"}}
	}
	switch compression(name) {
	case "gz":
		g := gzip.NewWriter(f)
		return &wclosers{g, []func() error{g.Close, f.Close}}, nil
	case "zst":
		z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			f.Close()
			return nil, CError{"Can't create zstd stream " + err.Error(), []string{"zstd.NewWriter", "CreateFile"}}
		}
		return &wclosers{z, []func() error{z.Close, f.Close}}, nil
	default:
		return f, nil
	}
}
