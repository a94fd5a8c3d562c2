package common

// WipeByteArray zeroes b in place. It is safe on nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
