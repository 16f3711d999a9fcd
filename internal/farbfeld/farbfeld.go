// Package farbfeld reads and writes the suckless farbfeld image format: an
// 8 byte magic, big-endian uint32 width and height, then 16-bit big-endian
// RGBA samples row by row.
package farbfeld

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

const (
	Magic     = "farbfeld"
	HeaderLen = 8 + 4 + 4

	// bytes per pixel in the file
	pixelLen = 8
)

var (
	ErrFormat   = errors.New("farbfeld: unexpected magic number")
	ErrImageEnd = errors.New("farbfeld: the end of the image has been reached")
	ErrTooLarge = errors.New("farbfeld: image dimensions too large")
)

// maxPixels guards allocation against corrupt headers.
const maxPixels = 1 << 26

func init() {
	image.RegisterFormat("farbfeld", Magic, Decode, DecodeConfig)
}

// ReadHeader consumes the 16 byte header and returns the dimensions.
// A short header yields io.ErrUnexpectedEOF.
func ReadHeader(r io.Reader) (width, height int, err error) {
	var head [HeaderLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, 0, fmt.Errorf("farbfeld: read header: %w", err)
	}
	if string(head[:8]) != Magic {
		return 0, 0, ErrFormat
	}
	w := binary.BigEndian.Uint32(head[8:12])
	h := binary.BigEndian.Uint32(head[12:16])
	if uint64(w)*uint64(h) > maxPixels {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}
	return int(w), int(h), nil
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	w, h, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBA64Model, Width: w, Height: h}, nil
}

// ReadRaw decodes the header and returns the raw big-endian sample bytes,
// read one row at a time. A stream that ends early yields an error wrapping
// both ErrImageEnd and io.ErrUnexpectedEOF.
func ReadRaw(r io.Reader) (width, height int, data []byte, err error) {
	width, height, err = ReadHeader(r)
	if err != nil {
		return 0, 0, nil, err
	}
	rowLen := width * pixelLen
	data = make([]byte, height*rowLen)
	for y := 0; y < height; y++ {
		if err := readRow(r, data[y*rowLen:(y+1)*rowLen]); err != nil {
			return 0, 0, nil, fmt.Errorf("farbfeld: row %d: %w", y, err)
		}
	}
	return width, height, data, nil
}

func readRow(r io.Reader, row []byte) error {
	_, err := io.ReadFull(r, row)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrImageEnd, io.ErrUnexpectedEOF)
	}
	return err
}

// Decode reads a whole farbfeld image. Farbfeld stores straight alpha, so
// the result is an NRGBA64 whose Pix is the file body verbatim.
func Decode(r io.Reader) (image.Image, error) {
	w, h, data, err := ReadRaw(r)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA64{
		Pix:    data,
		Stride: w * pixelLen,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

// EncodeRaw writes a header followed by already big-endian sample bytes.
func EncodeRaw(w io.Writer, width, height int, data []byte) error {
	if len(data) != width*height*pixelLen {
		return fmt.Errorf("farbfeld: %d sample bytes for %dx%d", len(data), width, height)
	}
	var head [HeaderLen]byte
	copy(head[:], Magic)
	binary.BigEndian.PutUint32(head[8:12], uint32(width))
	binary.BigEndian.PutUint32(head[12:16], uint32(height))
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("farbfeld: write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("farbfeld: write pixels: %w", err)
	}
	return nil
}

// Encode writes any image as farbfeld.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA64); ok && n.Stride == b.Dx()*pixelLen && b.Min == (image.Point{}) {
		return EncodeRaw(w, b.Dx(), b.Dy(), n.Pix[:b.Dy()*n.Stride])
	}

	bw := bufio.NewWriter(w)
	var head [HeaderLen]byte
	copy(head[:], Magic)
	binary.BigEndian.PutUint32(head[8:12], uint32(b.Dx()))
	binary.BigEndian.PutUint32(head[12:16], uint32(b.Dy()))
	if _, err := bw.Write(head[:]); err != nil {
		return fmt.Errorf("farbfeld: write header: %w", err)
	}

	var px [pixelLen]byte
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			binary.BigEndian.PutUint16(px[0:], c.R)
			binary.BigEndian.PutUint16(px[2:], c.G)
			binary.BigEndian.PutUint16(px[4:], c.B)
			binary.BigEndian.PutUint16(px[6:], c.A)
			if _, err := bw.Write(px[:]); err != nil {
				return fmt.Errorf("farbfeld: write pixels: %w", err)
			}
		}
	}
	return bw.Flush()
}
