package byteutil

import (
	"fmt"
	"sync"

	"github.com/multiformats/go-multihash"
)

// Hasher computes a digest. Implementations are stateless and safe for concurrent use.
type Hasher interface {
	Sum(data []byte) []byte
}

// ConfigurationError means a hashing algorithm is not available in this build.
// It is raised once, when the algorithm is first resolved.
type ConfigurationError struct {
	Algorithm string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("hash algorithm %s unavailable: %v", e.Algorithm, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type multihashHasher struct {
	code uint64
	name string
}

func resolveHasher(code uint64, name string) Hasher {
	// probe once so a missing algorithm fails here and not on every call
	if _, err := multihash.Sum(nil, code, -1); err != nil {
		panic(&ConfigurationError{Algorithm: name, Err: err})
	}
	return multihashHasher{code: code, name: name}
}

func (h multihashHasher) Sum(data []byte) []byte {
	mh, err := multihash.Sum(data, h.code, -1)
	if err != nil {
		panic(&ConfigurationError{Algorithm: h.name, Err: err})
	}

	decoded, err := multihash.Decode(mh)
	if err != nil {
		panic(&ConfigurationError{Algorithm: h.name, Err: err})
	}
	return decoded.Digest
}

var (
	sha1Once   sync.Once
	sha1Hasher Hasher
)

// SHA1 returns the process-wide SHA-1 hasher. It panics with a *ConfigurationError
// if SHA-1 is not registered.
func SHA1() Hasher {
	sha1Once.Do(func() {
		sha1Hasher = resolveHasher(multihash.SHA1, "sha1")
	})
	return sha1Hasher
}

// SHA1Sum returns the 20 byte SHA-1 digest of data.
func SHA1Sum(data []byte) (sum [20]byte) {
	copy(sum[:], SHA1().Sum(data))
	return
}
