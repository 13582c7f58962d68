package helpers

import "golang.org/x/crypto/bcrypt"

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BcryptEncoder is the one-way credential encoder used by the member service.
type BcryptEncoder struct {
	Cost int // zero means bcrypt.DefaultCost
}

func (e BcryptEncoder) Encode(raw string) (string, error) {
	cost := e.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (e BcryptEncoder) Matches(raw, encoded string) bool {
	return CompareHashAndPassword(encoded, raw)
}
