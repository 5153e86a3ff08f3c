package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme turns a password into its stored form and checks a candidate against it.
type Scheme interface {
	Hash(password string) (string, error)
	Check(stored, password string) bool
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashbytes, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func (Bcrypt) Check(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), prehash(password)) == nil
}

// prehash feeds bcrypt a fixed 44-byte digest, so passwords past bcrypt's 72-byte
// input limit are neither rejected nor truncated.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Plain stores passwords verbatim. INSECURE: kept only for databases seeded by the
// legacy service; use Bcrypt for anything new.
type Plain struct{}

func (Plain) Hash(password string) (string, error) { return password, nil }

func (Plain) Check(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// New picks a scheme by name. bcryptCost 0 means bcrypt.DefaultCost.
func New(name string, bcryptCost int) (Scheme, error) {
	switch strings.ToLower(name) {
	case "", "bcrypt":
		if bcryptCost != 0 && (bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return Bcrypt{Cost: bcryptCost}, nil
	case "plain":
		return Plain{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}
