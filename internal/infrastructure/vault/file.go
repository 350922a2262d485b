package vault

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"

	"github.com/lybfish/ironbull/internal/core/domain"
)

// FileVault is the durable tier: a single JSON state file holding the
// token slot and the identity slot. Reads are defensive — a missing,
// unreadable, or corrupt file is treated as an empty vault, never as a
// hard failure.
//
// When a seal key is configured the state is encrypted at rest with
// AES-GCM; the key is derived from the passphrase with HKDF-SHA256. A file
// that fails to unseal reads as empty.
type FileVault struct {
	path string
	aead cipher.AEAD
	mu   sync.Mutex
	log  zerolog.Logger
}

type fileState struct {
	Token    string           `json:"token,omitempty"`
	Identity *domain.Identity `json:"identity,omitempty"`
}

func NewFileVault(path, sealKey string, log zerolog.Logger) (*FileVault, error) {
	v := &FileVault{path: path, log: log}
	if sealKey != "" {
		key := make([]byte, 32)
		kdf := hkdf.New(sha256.New, []byte(sealKey), nil, []byte("ironbull-vault"))
		if _, err := io.ReadFull(kdf, key); err != nil {
			return nil, fmt.Errorf("vault key derivation: %w", err)
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("vault cipher: %w", err)
		}
		v.aead, err = cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("vault gcm: %w", err)
		}
	}
	return v, nil
}

func (v *FileVault) ReadToken(context.Context) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.load().Token, nil
}

func (v *FileVault) WriteToken(_ context.Context, token string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.load()
	st.Token = token
	return v.store(st)
}

func (v *FileVault) DeleteToken(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.load()
	if st.Token == "" {
		return nil
	}
	st.Token = ""
	return v.store(st)
}

func (v *FileVault) ReadIdentity(context.Context) (*domain.Identity, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.load().Identity, nil
}

func (v *FileVault) WriteIdentity(_ context.Context, id *domain.Identity) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.load()
	st.Identity = id
	return v.store(st)
}

func (v *FileVault) DeleteIdentity(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.load()
	if st.Identity == nil {
		return nil
	}
	st.Identity = nil
	return v.store(st)
}

// load reads and decodes the state file. Any failure yields an empty state.
func (v *FileVault) load() fileState {
	raw, err := os.ReadFile(v.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			v.log.Warn().Err(err).Str("path", v.path).Msg("vault file unreadable")
		}
		return fileState{}
	}
	if v.aead != nil {
		raw, err = v.unseal(raw)
		if err != nil {
			v.log.Warn().Err(err).Str("path", v.path).Msg("vault file failed to unseal")
			return fileState{}
		}
	}
	var st fileState
	if err := json.Unmarshal(raw, &st); err != nil {
		v.log.Warn().Err(err).Str("path", v.path).Msg("vault file corrupt")
		return fileState{}
	}
	return st
}

// store writes the state atomically: temp file in the same directory, then
// rename over the target.
func (v *FileVault) store(st fileState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("vault encode: %w", err)
	}
	if v.aead != nil {
		raw, err = v.seal(raw)
		if err != nil {
			return err
		}
	}
	dir := filepath.Dir(v.path)
	tmp, err := os.CreateTemp(dir, ".vault-*")
	if err != nil {
		return fmt.Errorf("vault temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("vault write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("vault chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vault close: %w", err)
	}
	return os.Rename(tmp.Name(), v.path)
}

func (v *FileVault) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("vault nonce: %w", err)
	}
	return v.aead.Seal(nonce, nonce, plain, nil), nil
}

func (v *FileVault) unseal(sealed []byte) ([]byte, error) {
	ns := v.aead.NonceSize()
	if len(sealed) < ns {
		return nil, errors.New("sealed payload too short")
	}
	return v.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
}
