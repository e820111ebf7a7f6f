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

// Package bucketname generates random bucket names drawn uniformly
// from a fixed lowercase alphabet.
package bucketname

import (
	"bufio"
	"crypto/rand"
	"io"
	"strings"
)

const (
	// Alphabet is the set of characters a generated name is drawn from.
	Alphabet = "abcdefhijklmnopqrstuvwxyz"

	// Length is the number of characters in a generated name.
	Length = 12
)

// Source opens a fresh random byte stream for the duration of one
// generation. The returned stream is always closed by the generator.
type Source func() (io.ReadCloser, error)

// CryptoSource is the default Source, backed by crypto/rand.
func CryptoSource() (io.ReadCloser, error) {
	return io.NopCloser(bufio.NewReaderSize(rand.Reader, 64)), nil
}

// Generate returns a new random name of Length characters from Alphabet.
func Generate() (string, error) {
	return GenerateFrom(CryptoSource)
}

// GenerateFrom returns a new random name reading entropy from the
// stream opened by open. Bytes outside of Alphabet are discarded
// rather than reduced, which keeps every character equally likely.
func GenerateFrom(open Source) (string, error) {
	r, e := open()
	if e != nil {
		return "", e
	}
	defer r.Close()

	var b [1]byte
	name := make([]byte, 0, Length)
	for len(name) < Length {
		if _, e = io.ReadFull(r, b[:]); e != nil {
			return "", e
		}
		if strings.IndexByte(Alphabet, b[0]) < 0 {
			continue
		}
		name = append(name, b[0])
	}
	return string(name), nil
}

// IsLegal reports whether name has the shape of a generated name.
func IsLegal(name string) bool {
	if len(name) != Length {
		return false
	}
	for i := 0; i < len(name); i++ {
		if strings.IndexByte(Alphabet, name[i]) < 0 {
			return false
		}
	}
	return true
}
