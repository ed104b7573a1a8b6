package backend

import (
	"encoding/binary"
	"math"
)

// encodeFloat32LE writes src into dst as little-endian IEEE 754 floats.
// dst must hold at least 4*len(src) bytes.
func encodeFloat32LE(dst []byte, src []float32) {
	if len(src) == 0 {
		return
	}
	_ = dst[4*len(src)-1]
	for i, s := range src {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(s))
	}
}
