// Command ffconv converts PNG, JPEG, BMP and GIF images to farbfeld,
// optionally resizing them first.
package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"raycast/internal/farbfeld"
	"raycast/internal/logger"
)

func main() {
	fs := pflag.NewFlagSet("ffconv", pflag.ContinueOnError)
	width := fs.IntP("width", "W", 0, "resize to this width (0 keeps the source size)")
	height := fs.IntP("height", "H", 0, "resize to this height (0 keeps the source size)")
	smooth := fs.Bool("smooth", false, "resample with Catmull-Rom instead of nearest neighbour")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: ffconv [flags] input output.ff")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Log.Fatal(err)
	}
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}
	in, out := fs.Arg(0), fs.Arg(1)

	src, err := os.Open(in)
	if err != nil {
		logger.Log.Fatal(err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		logger.Log.Fatal(err)
	}

	var scaler draw.Scaler = draw.NearestNeighbor
	if *smooth {
		scaler = draw.CatmullRom
	}
	format, b, err := convert(src, dst, *width, *height, scaler)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		logger.Log.WithError(err).Fatalf("convert %s", in)
	}

	logger.Log.WithFields(logrus.Fields{
		"input":  in,
		"format": format,
		"output": out,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Info("converted")
}

// convert decodes any registered image format from r and writes it to w as
// farbfeld. A zero width or height keeps the source dimension.
func convert(r io.Reader, w io.Writer, width, height int, scaler draw.Scaler) (string, image.Rectangle, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return "", image.Rectangle{}, fmt.Errorf("decode: %w", err)
	}

	b := img.Bounds()
	if width <= 0 {
		width = b.Dx()
	}
	if height <= 0 {
		height = b.Dy()
	}
	if width != b.Dx() || height != b.Dy() {
		dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
		scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	if err := farbfeld.Encode(w, img); err != nil {
		return format, image.Rectangle{}, err
	}
	return format, img.Bounds(), nil
}
