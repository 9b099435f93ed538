// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// DefaultFormat is the image format used when none is given.
const DefaultFormat = "png"

// Formats lists the image formats a Chart can be written in.
var Formats = []string{"eps", "jpg", "jpeg", "pdf", "png", "svg", "tex", "tif", "tiff"}

// IsFormat reports whether format is one of Formats.
func IsFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// WriteTo renders c to w as an image in the given format.
func (c *Chart) WriteTo(w io.Writer, format string) error {
	if format == "" {
		format = DefaultFormat
	}
	if !IsFormat(format) {
		return fmt.Errorf("unsupported image format %q", format)
	}
	wt, err := c.Plot.WriterTo(c.width, c.height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save renders c to the file base+"."+format, creating its directory
// if needed, and returns the file name. The file is replaced
// atomically, so a failed render leaves any previous chart intact.
func (c *Chart) Save(base, format string) (string, error) {
	if format == "" {
		format = DefaultFormat
	}
	file := base + "." + format
	var buf bytes.Buffer
	if err := c.WriteTo(&buf, format); err != nil {
		return "", fmt.Errorf("rendering %s: %w", file, err)
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return "", err
		}
	}
	if err := atomic.WriteFile(file, &buf); err != nil {
		return "", err
	}
	return file, nil
}
