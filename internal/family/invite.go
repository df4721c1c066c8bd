package family

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// InviteCodeLength is the number of characters in an invite code.
const InviteCodeLength = 8

const inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewInviteCode returns a random code of uppercase letters and digits.
// Uniqueness is enforced by the store, not here.
func NewInviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteAlphabet)))
	b := make([]byte, InviteCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		b[i] = inviteAlphabet[n.Int64()]
	}
	return string(b), nil
}

// NormalizeInviteCode trims and upper-cases user input.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidInviteCode reports whether code (already normalized) has the shape
// of an invite code.
func ValidInviteCode(code string) bool {
	if len(code) != InviteCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(inviteAlphabet, r) {
			return false
		}
	}
	return true
}
