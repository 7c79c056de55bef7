package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var ErrEmptySecret = errors.New("codec: empty secret")

// Codec seals small payloads (session files, ticket verification data)
// with AES-256-CFB keyed by the SHA-256 of a shared secret.
type Codec struct {
	key []byte
}

func New(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	sum := sha256.Sum256([]byte(secret))
	return &Codec{key: sum[:]}, nil
}

// Seal returns the URL-safe base64 of iv||ciphertext.
func (c *Codec) Seal(text []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("seal: could not create cipher: %w", err)
	}
	ciphertext := make([]byte, aes.BlockSize+len(text))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("seal: could not read iv: %w", err)
	}
	cfb := cipher.NewCFBEncrypter(block, iv)
	cfb.XORKeyStream(ciphertext[aes.BlockSize:], text)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

func (c *Codec) Open(text string) ([]byte, error) {
	cipherText, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("open: error decoding base64: %w", err)
	}
	if len(cipherText) < aes.BlockSize {
		return nil, fmt.Errorf("open: ciphertext too short")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("open: could not create cipher: %w", err)
	}
	iv := cipherText[:aes.BlockSize]
	data := make([]byte, len(cipherText)-aes.BlockSize)
	cfb := cipher.NewCFBDecrypter(block, iv)
	cfb.XORKeyStream(data, cipherText[aes.BlockSize:])
	return data, nil
}
