package format

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/opal-lang/knave/pkgs/lexer"
)

// Digester computes a BLAKE2b-256 digest over the canonical CBOR encoding
// of a token stream. Equal token streams always produce equal digests.
type Digester struct {
	hasher hash.Hash
	enc    *cbor.Encoder
}

// NewDigester returns an empty Digester
func NewDigester() (*Digester, error) {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	encMode, err := canonicalEncMode()
	if err != nil {
		return nil, err
	}
	return &Digester{hasher: hasher, enc: encMode.NewEncoder(hasher)}, nil
}

// Add feeds one token into the digest
func (d *Digester) Add(tok lexer.Token) error {
	if err := d.enc.Encode(NewRecord(tok)); err != nil {
		return fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return nil
}

// Sum returns the digest of every token added so far
func (d *Digester) Sum() [32]byte {
	var digest [32]byte
	copy(digest[:], d.hasher.Sum(nil))
	return digest
}

// Digest hashes a complete token stream
func Digest(tokens []lexer.Token) ([32]byte, error) {
	d, err := NewDigester()
	if err != nil {
		return [32]byte{}, err
	}
	for _, tok := range tokens {
		if err := d.Add(tok); err != nil {
			return [32]byte{}, err
		}
	}
	return d.Sum(), nil
}

// DigestString renders a digest as lowercase hex
func DigestString(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}
