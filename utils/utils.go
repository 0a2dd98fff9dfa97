package utils

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = bcrypt.DefaultCost

// MaxPINBytes: bcrypt учитывает только первые 72 байта пароля.
const MaxPINBytes = 72

// NormalizePIN убирает пробелы по краям; регистр не меняется.
func NormalizePIN(pin string) string {
	return strings.TrimSpace(pin)
}

func HashPIN(pin string) (string, error) {
	pin = NormalizePIN(pin)
	if len(pin) > MaxPINBytes {
		return "", fmt.Errorf("PIN is %d bytes long, at most %d allowed", len(pin), MaxPINBytes)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), BcryptCost)
	return string(bytes), err
}

// CheckPINHash сравнивает PIN с хешем. Слишком длинный PIN не совпадает никогда,
// иначе bcrypt сравнил бы только его начало.
func CheckPINHash(pin, hash string) bool {
	pin = NormalizePIN(pin)
	if len(pin) > MaxPINBytes {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	return err == nil
}

// IsBcryptHash отличает bcrypt-хеш от PIN в открытом виде.
func IsBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
