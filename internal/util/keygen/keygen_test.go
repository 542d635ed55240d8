package keygen

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}
	if !keyPair.Generated {
		t.Error("expected generated pair to be marked as generated")
	}

	block, _ := pem.Decode(keyPair.PrivateKey)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		t.Fatalf("expected RSA PRIVATE KEY PEM block, got %v", block)
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		t.Errorf("private key is not valid PKCS#1: %v", err)
	}
	if !strings.HasPrefix(string(keyPair.PublicKey), "ssh-rsa ") {
		t.Errorf("expected authorized_keys format, got %q", keyPair.PublicKey)
	}
}

func TestGenerateRSAKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()
	if _, err := GenerateRSAKeyPair(0); err == nil {
		t.Error("expected error for 0 bits")
	}
}

func TestFromPrivateKey_MatchesGeneratedPublicKey(t *testing.T) {
	t.Parallel()
	generated, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	derived, err := FromPrivateKey(generated.PrivateKey)
	if err != nil {
		t.Fatalf("FromPrivateKey failed: %v", err)
	}
	if derived.Generated {
		t.Error("loaded pair must not be marked as generated")
	}
	if !bytes.Equal(generated.PublicKey, derived.PublicKey) {
		t.Errorf("public keys differ:\n%s\n%s", generated.PublicKey, derived.PublicKey)
	}
	if _, _, _, _, err := ssh.ParseAuthorizedKey(derived.PublicKey); err != nil {
		t.Errorf("derived public key does not parse: %v", err)
	}
}

func TestLoadOrGenerate(t *testing.T) {
	t.Parallel()
	generated, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "id_rsa")
	if err := os.WriteFile(path, generated.PrivateKey, 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadOrGenerate(path)
	if err != nil {
		t.Fatalf("LoadOrGenerate failed: %v", err)
	}
	if loaded.Generated {
		t.Error("expected loaded pair")
	}

	if _, err := LoadOrGenerate(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing key file")
	}

	if _, err := FromPrivateKey([]byte("not a key")); err == nil {
		t.Error("expected error for invalid key")
	}
}
