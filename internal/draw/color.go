package draw

import "strconv"

// Terminal escape sequences for text styling.
const (
	ColorReset = "\033[0m"
	Background = 0x111111 // Color pixels fade toward
)

// RGB splits a 0xRRGGBB color into its channels.
func RGB(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Blend mixes src over dst with the given opacity in [0, 1].
func Blend(dst, src uint32, alpha float64) uint32 {
	if alpha <= 0 {
		return dst & 0xFFFFFF
	}
	if alpha >= 1 {
		return src & 0xFFFFFF
	}
	dr, dg, db := RGB(dst)
	sr, sg, sb := RGB(src)
	mix := func(d, s uint8) uint32 {
		return uint32(float64(d)*(1-alpha) + float64(s)*alpha + 0.5)
	}
	return mix(dr, sr)<<16 | mix(dg, sg)<<8 | mix(db, sb)
}

// appendFg appends a 24-bit foreground color sequence.
func appendFg(b []byte, c uint32) []byte {
	r, g, bl := RGB(c)
	b = append(b, "\033[38;2;"...)
	b = strconv.AppendUint(b, uint64(r), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(g), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(bl), 10)
	return append(b, 'm')
}

// appendBg appends a 24-bit background color sequence.
func appendBg(b []byte, c uint32) []byte {
	r, g, bl := RGB(c)
	b = append(b, "\033[48;2;"...)
	b = strconv.AppendUint(b, uint64(r), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(g), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(bl), 10)
	return append(b, 'm')
}
