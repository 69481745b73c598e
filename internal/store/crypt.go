package store

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for deriving the file-store key from the passphrase.
// N=2^15 keeps unlock under ~100ms on commodity hardware.
const (
	scryptN    = 1 << 15
	scryptR    = 8
	scryptP    = 1
	saltLength = 16
	keyLength  = chacha20poly1305.KeySize
)

// ErrBadPassphrase is returned when a sealed blob cannot be opened with the
// given passphrase (wrong passphrase or corrupted file).
var ErrBadPassphrase = errors.New("store: cannot decrypt with given passphrase")

// seal encrypts plaintext with a key derived from passphrase.
// Layout: salt (16) || nonce (24) || ciphertext.
func seal(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// open decrypts a blob produced by seal.
func open(passphrase string, blob []byte) ([]byte, error) {
	if len(blob) < saltLength+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("store: sealed blob too short (%d bytes)", len(blob))
	}
	salt := blob[:saltLength]
	nonce := blob[saltLength : saltLength+chacha20poly1305.NonceSizeX]
	ciphertext := blob[saltLength+chacha20poly1305.NonceSizeX:]
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrBadPassphrase
	}
	return plain, nil
}
