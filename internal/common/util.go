// Package common holds small helpers shared across client layers.
package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to drop passwords from memory after they have been sent.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
