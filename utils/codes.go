package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// referenceCodeChars excludes ambiguous characters (0/O, 1/I).
const referenceCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferenceCode creates a human-readable code in the format
// "<prefix>-XXXXXX", e.g. "ST-7KQ2ZH" for stays.
func GenerateReferenceCode(prefix string) (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceCodeChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate reference code: %w", err)
		}
		result[i] = referenceCodeChars[n.Int64()]
	}
	return prefix + "-" + string(result), nil
}
