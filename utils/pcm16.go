// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// PCM16Scale is the divisor mapping signed 16-bit samples onto [-1, 1).
const PCM16Scale = 32768.0

// Int16ToFloat32 normalizes a signed 16-bit sample. -32768 maps to exactly
// -1.0 and 32767 to just below 1.0.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / PCM16Scale
}

// Float32ToInt16 is the inverse of Int16ToFloat32, clamping to the int16 range.
func Float32ToInt16(x float32) int16 {
	v := x * PCM16Scale
	switch {
	case v >= 32767:
		return 32767
	case v <= -32768:
		return -32768
	}

	return int16(v)
}

// DecodePCM16LE converts little-endian 16-bit samples from src into dst and
// returns the number of samples written. A trailing odd byte is ignored.
func DecodePCM16LE(dst []float32, src []byte) int {
	n := min(len(src)/2, len(dst))
	for i := range n {
		dst[i] = Int16ToFloat32(int16(binary.LittleEndian.Uint16(src[2*i:])))
	}

	return n
}
