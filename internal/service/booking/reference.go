package booking

import (
	"crypto/rand"
	"math/big"
)

const (
	referencePrefix   = "BK"
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceRandLen  = 6
)

// NewReference returns "BK" followed by six characters drawn uniformly
// from [A-Z0-9].
func NewReference() (string, error) {
	out := make([]byte, 0, len(referencePrefix)+referenceRandLen)
	out = append(out, referencePrefix...)

	n := big.NewInt(int64(len(referenceAlphabet)))
	for i := 0; i < referenceRandLen; i++ {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		out = append(out, referenceAlphabet[idx.Int64()])
	}
	return string(out), nil
}
