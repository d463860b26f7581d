package event

import "crypto/rand"

// Access codes are short enough to read over a shoulder at a registration
// desk: six upper-case alphanumeric characters. The generator itself does not
// check for collisions across attendees; the roster does a bounded retry at
// issue time (see AttendeeManager.newCode).
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// GenerateAccessCode returns a fresh 6-character access code.
func GenerateAccessCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf)
}
