package auth

import (
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password with bcrypt. If hashing fails (e.g. the
// password exceeds bcrypt's 72-byte limit) the plaintext is stored instead,
// with an operator-visible warning. This weak mode is historical behavior
// kept for compatibility with existing data files; it is a known security
// defect, not a feature.
func HashPassword(plain string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Warn().Err(err).Msg("bcrypt unavailable, storing plaintext password!")
		return plain
	}
	return string(hashed)
}

// VerifyPassword checks a password against a stored value. Bcrypt hashes are
// compared with bcrypt; anything else is assumed to be a weak-mode plaintext
// record and compared directly.
func VerifyPassword(plain, stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return plain == stored
}
