package password

import (
	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
