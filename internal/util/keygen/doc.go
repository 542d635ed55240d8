// Package keygen produces the shared SSH credential of an install run.
//
// The credential is either loaded from an existing private key file or
// generated as a fresh RSA key pair. The private key is uploaded to the boot
// machine; the public key, in authorized_keys format, is what other machines
// must trust.
package keygen
