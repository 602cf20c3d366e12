package core

import "math/rand"

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength   = 5
)

// GenerateRoomCode returns a fresh 5-letter room code. Candidates are drawn
// uniformly from the uppercase alphabet and regenerated in full while inUse
// reports a collision. The caller supplies current occupancy, so the
// generator itself holds no state.
func GenerateRoomCode(inUse func(string) bool) string {
	buf := make([]byte, codeLength)
	for {
		for i := range buf {
			buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if !inUse(code) {
			return code
		}
	}
}
