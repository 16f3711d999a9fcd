// Package assetnet serves decoded textures over a websocket and fetches
// them into a texture store in the background. Frames use the protobuf
// wire format.
package assetnet

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrFrame = errors.New("assetnet: malformed frame")

// field numbers
const (
	fieldPath   protowire.Number = 1
	fieldID     protowire.Number = 2
	fieldWidth  protowire.Number = 3
	fieldHeight protowire.Number = 4
	fieldPixels protowire.Number = 5
	fieldError  protowire.Number = 6
)

// Request asks for the texture at Path, to be stored under ID.
type Request struct {
	ID   int
	Path string
}

// Image answers a Request: either RGBA pixels or Err.
type Image struct {
	ID     int
	Path   string
	Width  int
	Height int
	Pixels []byte
	Err    string
}

func (r Request) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldPath, protowire.BytesType)
	b = protowire.AppendString(b, r.Path)
	b = protowire.AppendTag(b, fieldID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.ID))
	return b
}

func (m Image) Marshal() []byte {
	b := make([]byte, 0, len(m.Pixels)+len(m.Path)+32)
	b = protowire.AppendTag(b, fieldPath, protowire.BytesType)
	b = protowire.AppendString(b, m.Path)
	b = protowire.AppendTag(b, fieldID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.ID))
	if m.Err != "" {
		b = protowire.AppendTag(b, fieldError, protowire.BytesType)
		return protowire.AppendString(b, m.Err)
	}
	b = protowire.AppendTag(b, fieldWidth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Width))
	b = protowire.AppendTag(b, fieldHeight, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Height))
	b = protowire.AppendTag(b, fieldPixels, protowire.BytesType)
	return protowire.AppendBytes(b, m.Pixels)
}

// walk calls fn for every field in b. fn returns the number of bytes it
// consumed, or a negative protowire error code.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrFrame, protowire.ParseError(n))
		}
		b = b[n:]

		n = fn(num, typ, b)
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrFrame, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func UnmarshalRequest(b []byte) (Request, error) {
	var r Request
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == fieldPath && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			r.Path = v
			return n
		case num == fieldID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.ID = int(v)
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
	if err != nil {
		return Request{}, err
	}
	if r.Path == "" {
		return Request{}, fmt.Errorf("%w: request without path", ErrFrame)
	}
	return r, nil
}

func UnmarshalImage(b []byte) (Image, error) {
	var m Image
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == fieldPath && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Path = v
			return n
		case num == fieldError && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Err = v
			return n
		case num == fieldPixels && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				m.Pixels = append([]byte(nil), v...)
			}
			return n
		case typ == protowire.VarintType && (num == fieldID || num == fieldWidth || num == fieldHeight):
			v, n := protowire.ConsumeVarint(b)
			switch num {
			case fieldID:
				m.ID = int(v)
			case fieldWidth:
				m.Width = int(v)
			case fieldHeight:
				m.Height = int(v)
			}
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
	if err != nil {
		return Image{}, err
	}
	if m.Err == "" && len(m.Pixels) != m.Width*m.Height*4 {
		return Image{}, fmt.Errorf("%w: %dx%d image with %d pixel bytes", ErrFrame, m.Width, m.Height, len(m.Pixels))
	}
	return m, nil
}
