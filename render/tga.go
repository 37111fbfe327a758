// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

const (
	tgaHeaderSize   = 18
	tgaTrueColor    = 2
	tgaBitsPerPixel = 24
)

// EncodeTGA writes img as an uncompressed 24-bit TGA with bottom-up rows, the layout the
// game loads.
func EncodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 || width > 0xffff || height > 0xffff {
		return fmt.Errorf("render: TGA size %dx%d out of range", width, height)
	}

	var header [tgaHeaderSize]byte
	header[2] = tgaTrueColor
	binary.LittleEndian.PutUint16(header[12:], uint16(width))
	binary.LittleEndian.PutUint16(header[14:], uint16(height))
	header[16] = tgaBitsPerPixel
	// Descriptor 0: origin at the bottom-left corner.
	header[17] = 0

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("render: write TGA header: %w", err)
	}

	row := make([]byte, width*3)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			i := (x - b.Min.X) * 3
			row[i] = uint8(bl >> 8)
			row[i+1] = uint8(g >> 8)
			row[i+2] = uint8(r >> 8)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("render: write TGA pixels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: write TGA: %w", err)
	}
	return nil
}
