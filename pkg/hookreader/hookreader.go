// Copyright (c) 2015-2024 MinIO, Inc.
//
// This file is part of MinIO Object Storage stack
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package hookreader reports every byte read from an upload source to
// a second reader, which is how progress bars follow SDKs that do not
// accept a progress hook of their own.
package hookreader

import (
	"fmt"
	"io"
	"sync"
)

// hookReader forwards reads to source and reports the bytes read to hook.
type hookReader struct {
	mu     sync.RWMutex
	source io.Reader
	hook   io.Reader
}

// Seek implements io.Seeker. Seeks source first, then the hook if it
// can seek too; both must land at the same offset.
func (hr *hookReader) Seek(offset int64, whence int) (n int64, err error) {
	hr.mu.Lock()
	defer hr.mu.Unlock()

	sourceSeeker, ok := hr.source.(io.Seeker)
	if !ok {
		return 0, fmt.Errorf("hookreader: source %T is not seekable", hr.source)
	}
	if n, err = sourceSeeker.Seek(offset, whence); err != nil {
		return 0, err
	}

	if hookSeeker, ok := hr.hook.(io.Seeker); ok {
		m, err := hookSeeker.Seek(offset, whence)
		if err != nil {
			return 0, err
		}
		if n != m {
			return 0, fmt.Errorf("hook seeked to %d, expected source offset %d", m, n)
		}
	}
	return n, nil
}

// Read implements io.Reader. Always reads from the source, the return
// value 'n' number of bytes are reported through the hook. Returns
// error for all non io.EOF conditions.
func (hr *hookReader) Read(b []byte) (n int, err error) {
	hr.mu.RLock()
	defer hr.mu.RUnlock()

	n, err = hr.source.Read(b)
	if err != nil && err != io.EOF {
		return n, err
	}
	if n == 0 {
		return n, err
	}
	// Progress the hook with the total read bytes from the source.
	if _, herr := hr.hook.Read(b[:n]); herr != nil && herr != io.EOF {
		return n, herr
	}
	return n, err
}

// NewHook returns a io.Reader which reports the data read from the
// source to the hook. A nil hook returns source unchanged.
func NewHook(source, hook io.Reader) io.Reader {
	if hook == nil {
		return source
	}
	return &hookReader{source: source, hook: hook}
}
