package subject

import (
	"fmt"
	"log/slog"
)

const (
	// ColumnReleaseName is the batch column holding release names
	ColumnReleaseName = "release_name"

	// ColumnTileIndex is the batch column holding tile indices
	ColumnTileIndex = "tile_index"

	// ColumnObjectID is the batch column holding object IDs
	ColumnObjectID = "object_id"
)

// Record is a single row of identifier input.
type Record struct {
	// ReleaseName may be nil only when identifiers are built with
	// WithoutReleaseName; MakeIDStrs includes release names by default and
	// rejects a nil one with ErrNullValue.
	ReleaseName any
	TileIndex   any
	ObjectID    any
}

// Batch is a column-oriented table of identifier inputs.
// Cells hold loosely typed values and are cast when identifiers are built.
// A nil ReleaseName column means the batch carries no release names.
type Batch struct {
	releaseNames []any
	tileIndices  []any
	objectIDs    []any
}

// NewBatch creates a batch from its columns. releaseNames may be nil;
// otherwise every column must have the same length.
func NewBatch(releaseNames, tileIndices, objectIDs []any) (*Batch, error) {
	if len(tileIndices) != len(objectIDs) {
		return nil, fmt.Errorf("%w: %s has %d rows, %s has %d",
			ErrColumnLength, ColumnTileIndex, len(tileIndices), ColumnObjectID, len(objectIDs))
	}
	if releaseNames != nil && len(releaseNames) != len(tileIndices) {
		return nil, fmt.Errorf("%w: %s has %d rows, %s has %d",
			ErrColumnLength, ColumnReleaseName, len(releaseNames), ColumnTileIndex, len(tileIndices))
	}

	return &Batch{
		releaseNames: cloneColumn(releaseNames),
		tileIndices:  cloneColumn(tileIndices),
		objectIDs:    cloneColumn(objectIDs),
	}, nil
}

// BatchFromRecords creates a batch from rows, always carrying a release_name column.
func BatchFromRecords(records ...Record) *Batch {
	b := &Batch{
		releaseNames: make([]any, len(records)),
		tileIndices:  make([]any, len(records)),
		objectIDs:    make([]any, len(records)),
	}
	for i, r := range records {
		b.releaseNames[i] = r.ReleaseName
		b.tileIndices[i] = r.TileIndex
		b.objectIDs[i] = r.ObjectID
	}
	return b
}

// Len returns the number of rows
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.tileIndices)
}

// HasReleaseNames reports whether the batch carries a release_name column
func (b *Batch) HasReleaseNames() bool {
	return b != nil && b.releaseNames != nil
}

// Row returns row i. It panics if i is out of range.
func (b *Batch) Row(i int) Record {
	r := Record{
		TileIndex: b.tileIndices[i],
		ObjectID:  b.objectIDs[i],
	}
	if b.releaseNames != nil {
		r.ReleaseName = b.releaseNames[i]
	}
	return r
}

// BatchOption configures MakeIDStrs
type BatchOption func(*batchConfig)

type batchConfig struct {
	includeReleaseName bool
}

// WithoutReleaseName omits the release name prefix for every row
func WithoutReleaseName() BatchOption {
	return func(cfg *batchConfig) {
		cfg.includeReleaseName = false
	}
}

// WithIncludeReleaseName sets whether every row is prefixed with its release name
func WithIncludeReleaseName(include bool) BatchOption {
	return func(cfg *batchConfig) {
		cfg.includeReleaseName = include
	}
}

// MakeIDStrs builds one identifier per batch row, in row order.
//
// Release names are included by default, cast to text for every row. Tile
// indices are strictly cast to int64; the first value that fails the cast
// aborts the batch with a *CastError. The batch is not modified.
//
// Any non-nil release_name or object_id value can be rendered as text. A nil
// cell in a column used for the identifier is rejected with a *CastError
// wrapping ErrNullValue rather than producing an identifier with a missing
// part.
func MakeIDStrs(batch *Batch, opts ...BatchOption) ([]string, error) {
	cfg := &batchConfig{includeReleaseName: true}
	for _, opt := range opts {
		opt(cfg)
	}

	if batch == nil {
		return []string{}, nil
	}

	n := batch.Len()
	if cfg.includeReleaseName && n > 0 && !batch.HasReleaseNames() {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnReleaseName)
	}

	prefixes, err := prefixColumn(batch, cfg.includeReleaseName)
	if err != nil {
		return nil, err
	}
	tiles, err := tileColumn(batch)
	if err != nil {
		return nil, err
	}

	ids := make([]string, n)
	for i := range n {
		objectID, err := castString(batch.objectIDs[i])
		if err != nil {
			return nil, &CastError{Row: i, Column: ColumnObjectID, Value: batch.objectIDs[i], Err: err}
		}
		ids[i] = buildID(prefixes[i], tiles[i], objectID)
	}

	slog.Debug("Built subject identifiers", "rows", n, "include_release_name", cfg.includeReleaseName)
	return ids, nil
}

// prefixColumn renders the release name prefix of every row
func prefixColumn(batch *Batch, include bool) ([]string, error) {
	prefixes := make([]string, batch.Len())
	if !include {
		return prefixes, nil
	}
	for i, v := range batch.releaseNames {
		name, err := castString(v)
		if err != nil {
			return nil, &CastError{Row: i, Column: ColumnReleaseName, Value: v, Err: err}
		}
		prefixes[i] = name + idSeparator
	}
	return prefixes, nil
}

// tileColumn strictly casts every tile index to int64 and renders it
func tileColumn(batch *Batch) ([]string, error) {
	tiles := make([]string, batch.Len())
	for i, v := range batch.tileIndices {
		n, err := castInt64(v)
		if err != nil {
			return nil, &CastError{Row: i, Column: ColumnTileIndex, Value: v, Err: err}
		}
		tiles[i] = fmt.Sprint(n)
	}
	return tiles, nil
}

func cloneColumn(col []any) []any {
	if col == nil {
		return nil
	}
	out := make([]any, len(col))
	copy(out, col)
	return out
}
