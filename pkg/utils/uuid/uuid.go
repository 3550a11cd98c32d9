package uuid

import (
	"crypto/rand"
	"fmt"
)

// New returns a new random version 4 uuid as string in XXXXXXXX-XXXX- ...
// format. Every run gets one, so log lines of concurrent runs can be told
// apart.
func New() string {
	uuid := [16]byte{}
	_, err := rand.Read(uuid[:])
	if err != nil {
		panic("cannot generate uuid using rand")
	}

	// Version 4, variant 10 per RFC 4122.
	uuid[6] = (uuid[6] & 0x0f) | 0x40
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return fmt.Sprintf("%x-%x-%x-%x-%x", uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:])
}
