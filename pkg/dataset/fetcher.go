package dataset

import "context"

//go:generate mockgen -destination=mocks/mock_fetcher.go -package=mocks -source=fetcher.go Fetcher

// Fetcher retrieves dataset files into the local cache.
//
// Given a descriptor and a registered file name, an implementation returns
// the path of a local copy, downloading it from d.FileLocator(name) into
// d.LocalPath(name) when it is missing, and verifying it against
// d.Checksum(name). A checksum mismatch must be reported as an error
// wrapping ErrChecksumMismatch.
type Fetcher interface {
	Fetch(ctx context.Context, d *Descriptor, name string) (string, error)
}
