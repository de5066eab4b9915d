package dataset

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// SchemeDOI locates files through a digital object identifier
	SchemeDOI = "doi"
	// SchemeHTTPS locates files on an HTTPS server
	SchemeHTTPS = "https"
	// SchemeHTTP locates files on an HTTP server
	SchemeHTTP = "http"
	// SchemeFTP locates files on an FTP server
	SchemeFTP = "ftp"
	// SchemeSFTP locates files on an SFTP server
	SchemeSFTP = "sftp"
	// SchemeFile locates files on the local filesystem
	SchemeFile = "file"
)

// Locator is the base location of a dataset's remote files.
type Locator struct {
	// Scheme is one of the Scheme* constants
	Scheme string
	// Address is everything after "<scheme>:", without a trailing slash
	Address string
}

// ParseLocator parses a base locator such as "doi:10.5281/zenodo.15106473"
// or "https://example.org/data/".
func ParseLocator(s string) (Locator, error) {
	if s == "" {
		return Locator{}, fmt.Errorf("%w: locator is empty", ErrInvalidLocator)
	}

	u, err := url.Parse(s)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %w", ErrInvalidLocator, err)
	}

	scheme := strings.ToLower(u.Scheme)
	_, address, _ := strings.Cut(s, ":")
	loc := Locator{Scheme: scheme, Address: strings.TrimRight(address, "/")}

	switch scheme {
	case SchemeDOI:
		if err := validateDOI(loc.Address); err != nil {
			return Locator{}, err
		}
	case SchemeHTTPS, SchemeHTTP, SchemeFTP, SchemeSFTP:
		if u.Host == "" {
			return Locator{}, fmt.Errorf("%w: %s locator %q has no host", ErrInvalidLocator, scheme, s)
		}
	case SchemeFile:
		if u.Path == "" {
			return Locator{}, fmt.Errorf("%w: file locator %q has no path", ErrInvalidLocator, s)
		}
	case "":
		return Locator{}, fmt.Errorf("%w: %q has no scheme", ErrInvalidLocator, s)
	default:
		return Locator{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocator, scheme)
	}

	return loc, nil
}

// validateDOI checks a DOI has a "10." directory prefix and a suffix
func validateDOI(doi string) error {
	prefix, suffix, found := strings.Cut(doi, "/")
	if !found || suffix == "" || !strings.HasPrefix(prefix, "10.") || len(prefix) == len("10.") {
		return fmt.Errorf("%w: %q is not a DOI of the form 10.<registrant>/<suffix>", ErrInvalidLocator, doi)
	}
	return nil
}

// IsDOI reports whether the locator is a persistent DOI
func (l Locator) IsDOI() bool {
	return l.Scheme == SchemeDOI
}

// String returns the base locator with a trailing slash
func (l Locator) String() string {
	return l.Scheme + ":" + l.Address + "/"
}

// Join returns the locator of a file under the base
func (l Locator) Join(name string) string {
	return l.String() + strings.TrimLeft(name, "/")
}
