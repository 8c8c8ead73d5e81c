package transfer

// AppendShortvec appends n in the compact-u16 encoding used by the
// transaction format: little-endian base-128, high bit set while more
// bytes follow.
func AppendShortvec(buf []byte, n int) []byte {
	v := uint(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}
