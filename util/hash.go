package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

const (
	Hash256Size       = 32
	MaxHashStringSize = Hash256Size * 2
)

// Hash is a double-SHA256 digest, used both as a transaction id and as a
// block hash. The zero value represents the "unknown" sentinel used by
// GetBestBlock.
type Hash [Hash256Size]byte

var HashZero = Hash{}

func (hash *Hash) String() string {
	return hash.ToString()
}

// ToString renders the hash in the customary reversed-byte-order hex form.
func (hash *Hash) ToString() string {
	b := hash.GetCloneBytes()
	for i := 0; i < Hash256Size/2; i++ {
		b[i], b[Hash256Size-1-i] = b[Hash256Size-1-i], b[i]
	}
	return hex.EncodeToString(b)
}

func (hash *Hash) Serialize(w io.Writer) (int, error) {
	n, err := w.Write(hash[:])
	return n, err
}

func (hash *Hash) Unserialize(r io.Reader) (int, error) {
	n, err := io.ReadFull(r, hash[:])
	return n, err
}

func (hash *Hash) GetCloneBytes() []byte {
	b := make([]byte, Hash256Size)
	copy(b, hash[:])
	return b
}

func (hash *Hash) ToBigInt() *big.Int {
	return new(big.Int).SetBytes(hash.GetCloneBytes())
}

// Cmp orders hashes by big-endian numeric value, giving hashes a total
// order; a nil hash sorts first.
func (hash *Hash) Cmp(other *Hash) int {
	if hash == nil && other == nil {
		return 0
	}
	if hash == nil {
		return -1
	}
	if other == nil {
		return 1
	}
	return hash.ToBigInt().Cmp(other.ToBigInt())
}

func (hash *Hash) SetBytes(b []byte) error {
	if len(b) != Hash256Size {
		return fmt.Errorf("invalid hash length of %v, want %v", len(b), Hash256Size)
	}
	copy(hash[:], b)
	return nil
}

func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// IsNull reports whether this is the zero/unknown sentinel hash.
func (hash *Hash) IsNull() bool {
	return *hash == HashZero
}

func DoubleSha256(buf []byte) Hash {
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	return Hash(second)
}

func GetHashFromStr(hashStr string) (*Hash, error) {
	b, err := DecodeHash(hashStr)
	if err != nil {
		return nil, err
	}
	h := new(Hash)
	if err := h.SetBytes(b); err != nil {
		return nil, err
	}
	return h, nil
}

func DecodeHash(src string) ([]byte, error) {
	if len(src) > MaxHashStringSize {
		return nil, fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)
	}
	srcBytes := []byte(src)
	if len(src)%2 != 0 {
		srcBytes = make([]byte, 1+len(src))
		srcBytes[0] = '0'
		copy(srcBytes[1:], src)
	}
	reversed := make([]byte, Hash256Size)
	if _, err := hex.Decode(reversed[Hash256Size-hex.DecodedLen(len(srcBytes)):], srcBytes); err != nil {
		return nil, err
	}
	out := make([]byte, Hash256Size)
	for i, b := range reversed[:Hash256Size/2] {
		out[i], out[Hash256Size-1-i] = reversed[Hash256Size-1-i], b
	}
	return out, nil
}

// HashFromString panics on malformed input; reserved for test fixtures and
// constant tables where the hex is known good at compile time.
func HashFromString(hexString string) *Hash {
	h, err := GetHashFromStr(hexString)
	if err != nil {
		panic(err)
	}
	return h
}
