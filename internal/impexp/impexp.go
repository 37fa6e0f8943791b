// Package impexp implements profile import/export: a JSON document holding
// every profile plus the active profile id, optionally passed through a
// symmetric cipher before serialization.
package impexp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	apperrors "networth-cli/internal/errors"
	"networth-cli/internal/models"
)

const (
	// keySize is the AES-256 key length in bytes.
	keySize = 32
	// saltSize is the salt length for key derivation.
	saltSize = 16
	// nonceSize is the GCM nonce length.
	nonceSize = 12
	// pbkdf2Iterations is the iteration count for key derivation.
	pbkdf2Iterations = 100000

	// encryptedPrefix marks an encrypted export so imports can tell the
	// two formats apart without guessing.
	encryptedPrefix = "NETWORTH1:"
)

// Document is the import/export payload.
type Document struct {
	Profiles        []models.Profile `json:"profiles"`
	ActiveProfileID string           `json:"activeProfileId,omitempty"`
}

// Export serializes a document to JSON.
func Export(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing export: %w", err)
	}
	return data, nil
}

// ExportEncrypted serializes a document and encrypts it with AES-256-GCM
// under a key derived from the password with PBKDF2. The result is a
// prefixed base64 string transform of salt+nonce+ciphertext.
func ExportEncrypted(doc *Document, password string) ([]byte, error) {
	plaintext, err := Export(doc)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	key := deriveKey(password, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(append(salt, nonce...), sealed...)
	return []byte(encryptedPrefix + base64.StdEncoding.EncodeToString(blob)), nil
}

// IsEncrypted reports whether raw data looks like an encrypted export.
func IsEncrypted(data []byte) bool {
	return strings.HasPrefix(string(data), encryptedPrefix)
}

// Import parses an export document, decrypting first when the payload is
// encrypted. Wrong passwords and malformed JSON surface as distinguishable
// recoverable errors; the caller decides how to present them.
func Import(data []byte, password string) (*Document, error) {
	if IsEncrypted(data) {
		plain, err := decryptPayload(data, password)
		if err != nil {
			return nil, err
		}
		data = plain
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, apperrors.NewImportError("parse", apperrors.ErrMalformedImport)
	}

	for i := range doc.Profiles {
		models.NormalizeProfile(&doc.Profiles[i])
	}
	return doc, nil
}

func decryptPayload(data []byte, password string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(string(data), encryptedPrefix))
	if err != nil {
		return nil, apperrors.NewImportError("decrypt", apperrors.ErrMalformedImport)
	}
	if len(blob) < saltSize+nonceSize {
		return nil, apperrors.NewImportError("decrypt", apperrors.ErrMalformedImport)
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]
	key := deriveKey(password, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, apperrors.NewImportError("decrypt", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, apperrors.NewImportError("decrypt", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// GCM authentication failure: wrong password or corrupted data.
		return nil, apperrors.NewImportError("decrypt", apperrors.ErrDecryptFailed)
	}
	return plaintext, nil
}

// deriveKey derives an encryption key from a password using PBKDF2.
func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
}
