// Package keygen generates Ed25519 key pairs for SSH authentication.
//
// The private key is written in OpenSSH format without a passphrase and the
// public key in authorized_keys format, matching what ssh-keygen produces.
package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrKeyExists is returned when a key file is already present at the target path
var ErrKeyExists = errors.New("ssh key already exists")

// KeyPair holds an Ed25519 key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the private key in OpenSSH PEM format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateEd25519KeyPair generates a new Ed25519 key pair. The comment is
// appended to the public key line.
func GenerateEd25519KeyPair(comment string) (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(priv, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	authorized := strings.TrimSuffix(string(ssh.MarshalAuthorizedKey(sshPub)), "\n")
	if comment != "" {
		authorized += " " + comment
	}

	return &KeyPair{
		PrivateKey: pem.EncodeToMemory(block),
		PublicKey:  []byte(authorized + "\n"),
	}, nil
}

// PrivateKeyPath returns the private key location for name inside dir
func PrivateKeyPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// PublicKeyPath returns the public key location for name inside dir
func PublicKeyPath(dir, name string) string {
	return PrivateKeyPath(dir, name) + ".pub"
}

// WriteKeyPair generates a key pair and writes it to <dir>/<name> and
// <dir>/<name>.pub. Existing files are never overwritten.
func WriteKeyPair(dir, name string) (privPath, pubPath string, err error) {
	privPath = PrivateKeyPath(dir, name)
	pubPath = PublicKeyPath(dir, name)

	for _, p := range []string{privPath, pubPath} {
		if _, statErr := os.Stat(p); statErr == nil {
			return "", "", fmt.Errorf("%w: %s", ErrKeyExists, p)
		}
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", "", fmt.Errorf("failed to create ssh directory %s: %w", dir, err)
	}

	kp, err := GenerateEd25519KeyPair(name)
	if err != nil {
		return "", "", err
	}

	if err := writeExclusive(privPath, kp.PrivateKey, 0o600); err != nil {
		return "", "", err
	}
	if err := writeExclusive(pubPath, kp.PublicKey, 0o644); err != nil {
		_ = os.Remove(privPath)
		return "", "", err
	}

	return privPath, pubPath, nil
}

// ReadPublicKey returns the trimmed authorized_keys line stored at path
func ReadPublicKey(path string) (string, error) {
	// #nosec G304 -- path is derived from the configured ssh directory
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read public key %s: %w", path, err)
	}

	key := strings.TrimSpace(string(data))
	if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(key)); err != nil {
		return "", fmt.Errorf("invalid public key in %s: %w", path, err)
	}
	return key, nil
}

func writeExclusive(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrKeyExists, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
