package crypto

import "runtime"

// Wipe zeroes b. Call it, usually deferred, on every buffer that held
// plaintext key material.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(&b)
}
