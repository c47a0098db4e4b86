package main

import "encoding/hex"

// shortDigestLen is how many digest bytes the manifest listing shows.
const shortDigestLen = 8

// shortDigest hex-encodes the leading bytes of a digest for display.
func shortDigest(d []byte) string {
	if len(d) > shortDigestLen {
		d = d[:shortDigestLen]
	}
	return hex.EncodeToString(d)
}
