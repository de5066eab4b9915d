package dataset

import (
	"crypto/md5"  //nolint:gosec // registries pin md5 digests published with the datasets
	"crypto/sha1" //nolint:gosec // accepted for registries that only publish sha1
	"crypto/sha256"
	_ "crypto/sha512" // registers sha384 and sha512 for go-digest
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Algorithm names a checksum algorithm
type Algorithm string

const (
	// MD5 is the md5 algorithm
	MD5 Algorithm = "md5"
	// SHA1 is the sha1 algorithm
	SHA1 Algorithm = "sha1"
	// SHA224 is the sha224 algorithm
	SHA224 Algorithm = "sha224"
	// SHA256 is the sha256 algorithm, assumed when a checksum has no algorithm prefix
	SHA256 Algorithm = "sha256"
	// SHA384 is the sha384 algorithm
	SHA384 Algorithm = "sha384"
	// SHA512 is the sha512 algorithm
	SHA512 Algorithm = "sha512"
)

// Checksum is an expected content digest in "<algorithm>:<hex>" form.
type Checksum struct {
	Algorithm Algorithm
	Hex       string
}

// ParseChecksum parses "<algorithm>:<hex>". A value without an algorithm
// prefix is a sha256 digest. Hex digits are normalized to lowercase.
func ParseChecksum(s string) (Checksum, error) {
	alg, encoded, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		alg, encoded = string(SHA256), alg
	}

	c := Checksum{
		Algorithm: Algorithm(strings.ToLower(alg)),
		Hex:       strings.ToLower(encoded),
	}
	if err := c.Validate(); err != nil {
		return Checksum{}, fmt.Errorf("invalid checksum %q: %w", s, err)
	}
	return c, nil
}

// String returns the checksum in "<algorithm>:<hex>" form
func (c Checksum) String() string {
	return string(c.Algorithm) + ":" + c.Hex
}

// Validate checks the algorithm is supported and the hex digest has the right length
func (c Checksum) Validate() error {
	if c.isDigestAlgorithm() {
		return digest.NewDigestFromEncoded(digest.Algorithm(c.Algorithm), c.Hex).Validate()
	}

	h, err := c.newHash()
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(c.Hex)
	if err != nil || strings.ToLower(c.Hex) != c.Hex {
		return fmt.Errorf("%s digest must be lowercase hex", c.Algorithm)
	}
	if len(raw) != h.Size() {
		return fmt.Errorf("%s digest must be %d hex characters, got %d", c.Algorithm, 2*h.Size(), len(c.Hex))
	}
	return nil
}

// Verify reads r to the end and reports ErrChecksumMismatch if its digest differs.
func (c Checksum) Verify(r io.Reader) error {
	if c.isDigestAlgorithm() {
		return c.verifyDigest(r)
	}

	h, err := c.newHash()
	if err != nil {
		return err
	}
	if _, err := io.Copy(h, r); err != nil {
		return fmt.Errorf("failed to hash content: %w", err)
	}
	if got := hex.EncodeToString(h.Sum(nil)); got != c.Hex {
		return fmt.Errorf("%w: expected %s, got %s:%s", ErrChecksumMismatch, c, c.Algorithm, got)
	}
	return nil
}

// VerifyFile verifies the content of the file at path
func (c Checksum) VerifyFile(path string) error {
	//nolint:gosec // path is a cache location derived from the descriptor
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := c.Verify(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// verifyDigest verifies sha2 family digests through go-digest
func (c Checksum) verifyDigest(r io.Reader) error {
	d := digest.NewDigestFromEncoded(digest.Algorithm(c.Algorithm), c.Hex)
	if err := d.Validate(); err != nil {
		return err
	}

	verifier := d.Verifier()
	if _, err := io.Copy(verifier, r); err != nil {
		return fmt.Errorf("failed to hash content: %w", err)
	}
	if !verifier.Verified() {
		return fmt.Errorf("%w: expected %s", ErrChecksumMismatch, c)
	}
	return nil
}

// isDigestAlgorithm reports whether go-digest implements the algorithm
func (c Checksum) isDigestAlgorithm() bool {
	switch c.Algorithm {
	case SHA256, SHA384, SHA512:
		return digest.Algorithm(c.Algorithm).Available()
	default:
		return false
	}
}

func (c Checksum) newHash() (hash.Hash, error) {
	switch c.Algorithm {
	case MD5:
		return md5.New(), nil //nolint:gosec
	case SHA1:
		return sha1.New(), nil //nolint:gosec
	case SHA224:
		return sha256.New224(), nil
	case SHA256, SHA384, SHA512:
		return digest.Algorithm(c.Algorithm).Hash(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, c.Algorithm)
	}
}
