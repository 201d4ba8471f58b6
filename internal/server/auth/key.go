package auth

import "github.com/pentalign/backend/internal/common"

// MinSecretLen is the minimum secret length accepted for HS256. HMAC-SHA256
// needs at least a hash-sized key to carry its full strength.
const MinSecretLen = 32

// DeriveKey turns the configured secret into the process-wide HMAC signing
// key. It fails with common.ErrMissingSecret for an empty secret and
// common.ErrWeakSecret for one shorter than MinSecretLen bytes.
//
// The derivation is deterministic, so the key may be computed once at
// startup and shared by unsynchronized readers afterwards.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, common.ErrMissingSecret
	}
	if len(secret) < MinSecretLen {
		return nil, common.ErrWeakSecret
	}
	return []byte(secret), nil
}
