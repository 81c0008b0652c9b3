// Package hash implements the acceptance predicate over SHA-1 digests used
// to select witnesses for a claim-checking proof (spec §4.2/§4.3).
package hash

// ValidateHash reports whether digest satisfies the κ-bit leading-zero
// predicate: the leading (160-κ) bits of digest, read most-significant-bit
// first, are all zero. Equivalently, digest interpreted as a big-endian
// 160-bit integer is strictly less than 2^κ.
//
// kappa outside [0, 160] is clamped at the top end: kappa>=160 means every
// digest trivially satisfies the predicate. kappa=0 is not a degenerate
// case — it requires all 160 bits to be zero, i.e. only the all-zero
// digest passes. Only a genuinely negative kappa is unsatisfiable.
func ValidateHash(digest []byte, kappa int) bool {
	if kappa < 0 {
		return false
	}
	if kappa >= len(digest)*8 {
		return true
	}

	zeroBits := len(digest)*8 - kappa
	fullBytes := zeroBits / 8
	remBits := zeroBits % 8

	for i := 0; i < fullBytes; i++ {
		if digest[i] != 0 {
			return false
		}
	}
	if remBits == 0 {
		return true
	}
	mask := byte(0xFF << (8 - remBits))
	return digest[fullBytes]&mask == 0
}
