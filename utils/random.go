package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecureRandomString kriptografik rastgele, hex kodlu bir string üretir.
// length çıktı uzunluğudur (karakter sayısı).
func GenerateSecureRandomString(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}
