// Package texture holds decoded textures and the store the renderer consults
// before every draw.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"raycast/internal/farbfeld"
	"raycast/internal/logger"
	"raycast/internal/resindex"
)

// Texture is a decoded image: Width*Height RGBA pixels, 8 bits per channel,
// row-major.
type Texture struct {
	Width  int
	Height int
	Data   []byte
}

// FromImage converts any image to a texture. 16-bit images keep the high
// byte of each sample.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := &Texture{Width: b.Dx(), Height: b.Dy(), Data: make([]byte, b.Dx()*b.Dy()*4)}

	if n, ok := img.(*image.NRGBA64); ok {
		for y := 0; y < t.Height; y++ {
			row := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < t.Width*4; x++ {
				t.Data[(y*t.Width)*4+x] = row[x*2]
			}
		}
		return t
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			t.Data[i], t.Data[i+1], t.Data[i+2], t.Data[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return t
}

// Decode reads a farbfeld stream into a texture.
func Decode(r io.Reader) (*Texture, error) {
	img, err := farbfeld.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Store maps texture ids to textures. A texture is either fully present or
// absent; Put swaps the pointer in under the lock.
type Store struct {
	mu       sync.RWMutex
	textures map[int]*Texture
}

func NewStore() *Store {
	return &Store{textures: make(map[int]*Texture)}
}

// Lookup is the presence check every draw call makes; ok is false while the
// texture has not been loaded.
func (s *Store) Lookup(id int) (*Texture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.textures[id]
	return t, ok
}

func (s *Store) Put(id int, t *Texture) {
	s.mu.Lock()
	s.textures[id] = t
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.textures)
}

// LoadIndex decodes every indexed texture from fsys into the store. Any
// missing or malformed file aborts the load.
func LoadIndex(fsys fs.FS, idx *resindex.Index, s *Store) error {
	for _, e := range idx.Images {
		name := strings.TrimPrefix(e.Path, "/")
		f, err := fsys.Open(name)
		if err != nil {
			return fmt.Errorf("texture %d: %w", e.ID, err)
		}
		t, err := Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("texture %d (%s): %w", e.ID, e.Path, err)
		}
		s.Put(e.ID, t)

		logger.Log.WithFields(logrus.Fields{
			"id":     e.ID,
			"path":   e.Path,
			"width":  t.Width,
			"height": t.Height,
		}).Debug("texture loaded")
	}
	return nil
}
