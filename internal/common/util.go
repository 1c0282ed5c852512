package common

// WipeByteArray zeroes b in place. The sign-in and sign-up flows wipe
// password buffers as soon as the transport has consumed them. Safe on nil.
func WipeByteArray(b []byte) {
	clear(b)
}
