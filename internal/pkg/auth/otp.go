package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// CodeGenerator produces one-time verification codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeHasher defines hashing strategy for stored verification codes.
type CodeHasher interface {
	Hash(code string) (string, error)
	Compare(hash string, code string) error
}

// RandomCodeGenerator draws codes from crypto/rand.
type RandomCodeGenerator struct{}

// Generate returns a zero-padded 6-digit code.
func (RandomCodeGenerator) Generate() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}

// BcryptHasher uses bcrypt to hash verification codes before storage.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns bcrypt hash for provided code.
func (h *BcryptHasher) Hash(code string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare checks code against stored hash.
func (h *BcryptHasher) Compare(hash string, code string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
}
