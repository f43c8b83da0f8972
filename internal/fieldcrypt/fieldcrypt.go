// Package fieldcrypt implements per-field authenticated encryption for
// persisted result records.
//
// Each logical field is encrypted independently with AES-256-GCM under a key
// derived from the owning user's identity, so one corrupted or legacy field
// never blocks access to its siblings. The wire format is
// ivHex:tagHex:saltHex:cipherHex, compatible with records written before
// this service existed.
package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength     = 32
	ivLength      = 16
	authTagLength = 16
	saltLength    = 16
	pbkdf2Iters   = 100000
)

// Error variables for codec configuration and field decoding.
var (
	ErrMissingKey       = errors.New("encryption key not set")
	ErrInvalidKeyLength = errors.New("encryption key must be 32 bytes hex-encoded")
	ErrMalformedField   = errors.New("invalid encrypted field format")
)

// Opts holds codec configuration.
type Opts struct {
	MasterKeyHex string
}

// Option configures the codec.
type Option func(*Opts)

// WithMasterKey sets the hex-encoded 32-byte master key.
func WithMasterKey(hexKey string) Option {
	return func(o *Opts) { o.MasterKeyHex = hexKey }
}

// Codec encrypts and decrypts individual record fields.
type Codec struct {
	baseKey []byte
}

// NewCodec creates a field codec. The master key falls back to the
// ENCRYPTION_KEY environment variable.
func NewCodec(opts ...Option) (*Codec, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MasterKeyHex == "" {
		cfg.MasterKeyHex = os.Getenv("ENCRYPTION_KEY")
	}
	if cfg.MasterKeyHex == "" {
		return nil, ErrMissingKey
	}
	key, err := hex.DecodeString(cfg.MasterKeyHex)
	if err != nil || len(key) != keyLength {
		return nil, ErrInvalidKeyLength
	}
	return &Codec{baseKey: key}, nil
}

// userSalt derives the deterministic per-user salt bound to the owner's identity.
func userSalt(userID string) []byte {
	sum := sha256.Sum256([]byte("flux-user-" + userID + "-salt"))
	return sum[:saltLength]
}

// userKey stretches the master key with the per-user salt.
func (c *Codec) userKey(salt []byte) []byte {
	return pbkdf2.Key(c.baseKey, salt, pbkdf2Iters, keyLength, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	// Legacy records use a 16-byte IV rather than the GCM default of 12.
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt encrypts a field value under the key bound to userID.
func (c *Codec) Encrypt(plaintext, userID string) (string, error) {
	salt := userSalt(userID)
	gcm, err := newGCM(c.userKey(salt))
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-authTagLength]
	tag := sealed[len(sealed)-authTagLength:]

	return fmt.Sprintf("%s:%s:%s:%s",
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(salt),
		hex.EncodeToString(ciphertext),
	), nil
}

// Decrypt decrypts a field value under the key bound to userID.
func (c *Codec) Decrypt(stored, userID string) (string, error) {
	parts := strings.Split(stored, ":")
	if len(parts) < 4 {
		return "", ErrMalformedField
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivLength {
		return "", ErrMalformedField
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != authTagLength {
		return "", ErrMalformedField
	}
	ciphertext, err := hex.DecodeString(strings.Join(parts[3:], ":"))
	if err != nil {
		return "", ErrMalformedField
	}

	key := c.baseKey
	if parts[2] != "" {
		key = c.userKey(userSalt(userID))
	}
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("field decryption failed: %w", err)
	}
	return string(plaintext), nil
}

// FieldStatus reports how a stored field value was resolved.
type FieldStatus int

const (
	// FieldDecrypted means the field decrypted cleanly under the user key.
	FieldDecrypted FieldStatus = iota
	// FieldLegacyPlaintext means decryption failed but the stored value was
	// already valid plaintext JSON (a pre-encryption record).
	FieldLegacyPlaintext
	// FieldFailed means the field could not be resolved at all.
	FieldFailed
)

// FieldResult is the outcome of resolving one stored field. A Failed field
// carries the decryption error; it never aborts sibling fields.
type FieldResult struct {
	Status FieldStatus
	Value  string
	Err    error
}

// DecodeField resolves a stored field value: decrypt first, then a single
// legacy fallback treating the stored value as already-plaintext JSON,
// otherwise a field-scoped failure.
func (c *Codec) DecodeField(stored, userID string) FieldResult {
	plaintext, err := c.Decrypt(stored, userID)
	if err == nil {
		return FieldResult{Status: FieldDecrypted, Value: plaintext}
	}
	if json.Valid([]byte(stored)) {
		return FieldResult{Status: FieldLegacyPlaintext, Value: stored}
	}
	return FieldResult{Status: FieldFailed, Err: err}
}

// GenerateMasterKey returns a fresh random hex-encoded master key suitable
// for the ENCRYPTION_KEY environment variable.
func GenerateMasterKey() (string, error) {
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}
