// Package creatoraccounts handles survey creator profiles: access code
// hashing, phone number normalization and the deterministic lookup hash under
// which a profile is stored.
package creatoraccounts

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrWrongAccessCode = errors.New("wrong access code")

var (
	argon2Memory      uint32 = 64 * 1024
	argon2Iterations  uint32 = 4
	argon2Parallelism uint8  = 1
)

const argon2SaltLength = 16
const argon2KeyLength = 32

func InitArgonParams(memory uint32, iterations uint32, parallelism uint8) {
	argon2Memory = memory
	argon2Iterations = iterations
	argon2Parallelism = parallelism
}

func HashAccessCode(accessCode string) (string, error) {
	salt := make([]byte, argon2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(accessCode), salt, argon2Iterations, argon2Memory, argon2Parallelism, argon2KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Iterations,
		argon2Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func CheckAccessCode(encodedHash string, accessCode string) error {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return errors.New("malformed access code hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return err
	}
	if version != argon2.Version {
		return errors.New("unsupported argon2 version")
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return err
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return err
	}

	key := argon2.IDKey([]byte(accessCode), salt, iterations, memory, parallelism, uint32(len(expected)))
	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return ErrWrongAccessCode
	}
	return nil
}
