package subject

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads a batch from CSV with a header row.
//
// The tile_index and object_id columns are required and may appear in any
// order; release_name is optional and other columns are ignored. All cells
// are kept as text, so tile indices are validated by MakeIDStrs.
func ReadCSV(r io.Reader) (*Batch, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input has no header", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	tileCol, ok := positions[ColumnTileIndex]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnTileIndex)
	}
	objectCol, ok := positions[ColumnObjectID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnObjectID)
	}
	releaseCol, hasRelease := positions[ColumnReleaseName]

	b := &Batch{
		tileIndices: []any{},
		objectIDs:   []any{},
	}
	if hasRelease {
		b.releaseNames = []any{}
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		b.tileIndices = append(b.tileIndices, row[tileCol])
		b.objectIDs = append(b.objectIDs, row[objectCol])
		if hasRelease {
			b.releaseNames = append(b.releaseNames, row[releaseCol])
		}
	}

	return b, nil
}
