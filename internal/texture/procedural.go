package texture

import "hash/fnv"

// Procedural draws a stand-in texture for id so the engine can run without
// an asset tree. Even ids get bricks, odd ids a checkerboard, tinted by a
// hash of the id.
func Procedural(id, width, height int) *Texture {
	h := fnv.New32a()
	h.Write([]byte{byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24)})
	sum := h.Sum32()
	base := [3]byte{byte(sum), byte(sum >> 8), byte(sum >> 16)}
	for i := range base {
		base[i] = base[i]/2 + 96
	}

	t := &Texture{Width: width, Height: height, Data: make([]byte, width*height*4)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var dark bool
			if id%2 == 0 {
				row := y / 8
				offset := 0
				if row%2 == 1 {
					offset = 8
				}
				dark = y%8 == 0 || (x+offset)%16 == 0
			} else {
				dark = (x/8+y/8)%2 == 0
			}

			i := (y*width + x) * 4
			for c := 0; c < 3; c++ {
				v := base[c]
				if dark {
					v /= 2
				}
				t.Data[i+c] = v
			}
			t.Data[i+3] = 255
		}
	}
	return t
}

// FillProcedural puts a procedural texture into s for every id not yet present.
func FillProcedural(s *Store, ids []int, width, height int) {
	for _, id := range ids {
		if _, ok := s.Lookup(id); ok {
			continue
		}
		s.Put(id, Procedural(id, width, height))
	}
}
