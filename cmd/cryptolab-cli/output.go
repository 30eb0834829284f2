package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BackendStack21/cryptolab-go/rsa"
)

// keyFile is the on-disk form of an RSA key pair.
type keyFile struct {
	rsa.KeyPairExport
	CreatedAt string `json:"created_at"`
}

func newKeyFile(kp *rsa.KeyPair) keyFile {
	return keyFile{
		KeyPairExport: kp.Export(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// loadKeyPair reads a key file and re-validates the key pair it holds.
func loadKeyPair(filename string) (*rsa.KeyPair, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parsing key file: %w", err)
	}
	return rsa.ImportKeyPair(kf.KeyPairExport)
}

// loadPublicKey reads only the public half of a key file.
func loadPublicKey(filename string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	var kf struct {
		PublicKey *rsa.PublicKey `json:"public_key"`
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parsing key file: %w", err)
	}
	if kf.PublicKey == nil {
		return nil, fmt.Errorf("key file %s has no public_key", filename)
	}
	return kf.PublicKey, nil
}

// writeOutput writes data to filename with owner-only permissions, or to w
// when filename is empty.
func writeOutput(w io.Writer, data []byte, filename string) error {
	if filename == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	// WriteFile leaves the mode of an existing file untouched.
	return os.Chmod(filename, 0o600)
}
