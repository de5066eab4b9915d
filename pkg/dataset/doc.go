// Package dataset describes reference datasets that are retrieved by checksum.
//
// A Descriptor names three things:
//   - a per-application cache directory, resolved from the platform's
//     per-user cache location (XDG on Linux, ~/Library/Caches on macOS,
//     %LOCALAPPDATA% on Windows),
//   - a base Locator for the remote files, preferably a DOI so links stay
//     stable when hosting moves,
//   - a registry mapping each file name to its expected Checksum.
//
// Descriptors are immutable values built once and passed explicitly to the
// components that need them. Retrieval itself is delegated to a Fetcher:
// this package never downloads, retries or caches files. It only resolves
// which file is wanted and hands the descriptor to the fetcher, which is
// responsible for verifying the checksum on download.
package dataset
