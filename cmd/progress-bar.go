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
package cmd

import (
	"runtime"
	"strings"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/fatih/color"
	"github.com/minio/pkg/v3/console"
)

// Share of the terminal width given to the object name.
const uploadBarCaptionPercent = 18

// uploadBar draws the progress of a single object upload. It is
// handed to the storage client as the progress reader.
type uploadBar struct {
	*pb.ProgressBar
}

// barFormat returns the bar glyphs for goos, '\x00' separates unicode glyphs.
func barFormat(goos string) string {
	switch goos {
	case "linux":
		return "┃\x00▓\x00█\x00░\x00┃"
	case "darwin":
		return " \x00▓\x00 \x00░\x00 "
	default:
		return "[=> ]"
	}
}

// newUploadBar starts a bar for object of size bytes.
func newUploadBar(object string, size int64) *uploadBar {
	console.SetColor("Bar", color.New(color.FgGreen, color.Bold))

	bar := pb.New64(size)
	bar.SetUnits(pb.U_BYTES)
	bar.SetRefreshRate(125 * time.Millisecond)
	bar.ShowSpeed = true
	bar.Format(barFormat(runtime.GOOS))

	// The newline is printed by Finish.
	bar.NotPrint = true
	bar.Callback = func(s string) {
		console.Print(console.Colorize("Bar", "\r"+s))
	}

	u := &uploadBar{ProgressBar: bar}
	bar.Prefix(fitCaption(object+": ", bar.GetWidth()*uploadBarCaptionPercent/100))
	bar.Start()
	return u
}

// Read records len(b) uploaded bytes. A retried request sends the
// object again, the bar never goes past the object size.
func (u *uploadBar) Read(b []byte) (int, error) {
	n, e := u.ProgressBar.Read(b)
	if total := u.Total; total > 0 && u.Get() > total {
		u.Set64(total)
	}
	return n, e
}

// Finish stops redrawing and moves the cursor past the bar.
func (u *uploadBar) Finish() {
	u.ProgressBar.Finish()
	console.Println()
}

// fitCaption pads or left-trims caption to exactly width characters.
func fitCaption(caption string, width int) string {
	switch {
	case width <= 3:
		return caption
	case len(caption) > width:
		return "..." + caption[len(caption)-width+3:]
	case len(caption) < width:
		return caption + strings.Repeat(" ", width-len(caption))
	}
	return caption
}
