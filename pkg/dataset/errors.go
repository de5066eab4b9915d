package dataset

import "errors"

var (
	// ErrUnknownFile is returned when a file is not present in the descriptor registry
	ErrUnknownFile = errors.New("file not in registry")

	// ErrChecksumMismatch is returned when content does not match its registered checksum
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnsupportedAlgorithm is returned for checksum algorithms with no hash implementation
	ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")

	// ErrInvalidLocator is returned when a base locator cannot be parsed
	ErrInvalidLocator = errors.New("invalid locator")
)
