package subject

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeIDStrs(t *testing.T) {
	t.Parallel()

	twoRows := BatchFromRecords(
		Record{ReleaseName: "Q1_R1", TileIndex: 1, ObjectID: "a-1"},
		Record{ReleaseName: "Q1_R1", TileIndex: 2, ObjectID: "b-2"},
	)

	tests := []struct {
		name     string
		batch    *Batch
		opts     []BatchOption
		expected []string
	}{
		{
			name:     "release names included by default",
			batch:    twoRows,
			expected: []string{"Q1_R1_1_aNEG1", "Q1_R1_2_bNEG2"},
		},
		{
			name:     "release names excluded",
			batch:    twoRows,
			opts:     []BatchOption{WithoutReleaseName()},
			expected: []string{"1_aNEG1", "2_bNEG2"},
		},
		{
			name:     "explicit include",
			batch:    twoRows,
			opts:     []BatchOption{WithIncludeReleaseName(true)},
			expected: []string{"Q1_R1_1_aNEG1", "Q1_R1_2_bNEG2"},
		},
		{
			name: "mixed cell types are cast",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1_R1", TileIndex: "102018211", ObjectID: int64(-532475986586820752)},
				Record{ReleaseName: []byte("Q1_R2"), TileIndex: float64(7), ObjectID: "x"},
				Record{ReleaseName: 3, TileIndex: uint16(8), ObjectID: true},
			),
			expected: []string{
				"Q1_R1_102018211_NEG532475986586820752",
				"Q1_R2_7_x",
				"3_8_true",
			},
		},
		{
			name: "float object id keeps decimal",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: 1, ObjectID: 2.0},
			),
			expected: []string{"Q1_1_2.0"},
		},
		{
			name: "nil stringer release name does not panic",
			batch: BatchFromRecords(
				Record{ReleaseName: (*catalogueLabel)(nil), TileIndex: 1, ObjectID: "a"},
			),
			expected: []string{"<nil>_1_a"},
		},
		{
			name: "empty release name keeps separator",
			batch: BatchFromRecords(
				Record{ReleaseName: "", TileIndex: 1, ObjectID: "a"},
			),
			expected: []string{"_1_a"},
		},
		{
			name: "null release name ignored when excluded",
			batch: BatchFromRecords(
				Record{TileIndex: 1, ObjectID: "a"},
			),
			opts:     []BatchOption{WithoutReleaseName()},
			expected: []string{"1_a"},
		},
		{
			name:     "empty batch",
			batch:    BatchFromRecords(),
			expected: []string{},
		},
		{
			name:     "nil batch",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ids, err := MakeIDStrs(tt.batch, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestMakeIDStrs_MatchesScalar(t *testing.T) {
	t.Parallel()

	records := []Record{
		{ReleaseName: "Q1_R1", TileIndex: 102018211, ObjectID: "-532475986586820752"},
		{ReleaseName: "Q1_R1", TileIndex: 102018212, ObjectID: "532475986586820752"},
		{ReleaseName: "Q1_R2", TileIndex: 5, ObjectID: "a-b-c"},
	}

	ids, err := MakeIDStrs(BatchFromRecords(records...))
	require.NoError(t, err)
	require.Len(t, ids, len(records))

	for i, r := range records {
		expected := MakeIDStr(r.TileIndex.(int), r.ObjectID.(string), WithReleaseName(r.ReleaseName.(string)))
		assert.Equal(t, expected, ids[i], "row %d", i)
	}
}

func TestMakeIDStrs_DoesNotMutate(t *testing.T) {
	t.Parallel()

	tiles := []any{"1", "2"}
	objects := []any{"a-1", "b-2"}
	batch, err := NewBatch(nil, tiles, objects)
	require.NoError(t, err)

	_, err = MakeIDStrs(batch, WithoutReleaseName())
	require.NoError(t, err)

	assert.Equal(t, []any{"1", "2"}, tiles)
	assert.Equal(t, []any{"a-1", "b-2"}, objects)
	assert.Equal(t, Record{TileIndex: "1", ObjectID: "a-1"}, batch.Row(0))
	assert.Equal(t, Record{TileIndex: "2", ObjectID: "b-2"}, batch.Row(1))
}

func TestMakeIDStrs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		batch      *Batch
		opts       []BatchOption
		wantErr    error
		wantRow    int
		wantColumn string
	}{
		{
			name: "non integer tile in later row",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1_R1", TileIndex: 1, ObjectID: "a"},
				Record{ReleaseName: "Q1_R1", TileIndex: "abc", ObjectID: "b"},
			),
			wantErr:    ErrInvalidCast,
			wantRow:    1,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "non integer tile without release names",
			batch: BatchFromRecords(
				Record{TileIndex: "abc", ObjectID: "a"},
			),
			opts:       []BatchOption{WithoutReleaseName()},
			wantErr:    ErrInvalidCast,
			wantRow:    0,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "decimal text tile",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: "1.0", ObjectID: "a"},
			),
			wantErr:    ErrInvalidCast,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "padded text tile",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: " 1", ObjectID: "a"},
			),
			wantErr:    ErrInvalidCast,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "NaN tile",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: math.NaN(), ObjectID: "a"},
			),
			wantErr:    ErrInvalidCast,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "overflowing unsigned tile",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: uint64(math.MaxUint64), ObjectID: "a"},
			),
			wantErr:    ErrInvalidCast,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "unsupported tile type",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: []int{1}, ObjectID: "a"},
			),
			wantErr:    ErrInvalidCast,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "null tile",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", ObjectID: "a"},
			),
			wantErr:    ErrNullValue,
			wantColumn: ColumnTileIndex,
		},
		{
			name: "null release name when included",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: 1, ObjectID: "a"},
				Record{TileIndex: 2, ObjectID: "b"},
			),
			wantErr:    ErrNullValue,
			wantRow:    1,
			wantColumn: ColumnReleaseName,
		},
		{
			name: "null object id",
			batch: BatchFromRecords(
				Record{ReleaseName: "Q1", TileIndex: 1},
			),
			wantErr:    ErrNullValue,
			wantColumn: ColumnObjectID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ids, err := MakeIDStrs(tt.batch, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, ids)
			assert.ErrorIs(t, err, tt.wantErr)

			var castErr *CastError
			require.True(t, errors.As(err, &castErr), "expected *CastError, got %T", err)
			assert.Equal(t, tt.wantRow, castErr.Row)
			assert.Equal(t, tt.wantColumn, castErr.Column)
		})
	}
}

func TestMakeIDStrs_MissingReleaseNameColumn(t *testing.T) {
	t.Parallel()

	batch, err := NewBatch(nil, []any{1}, []any{"a"})
	require.NoError(t, err)
	assert.False(t, batch.HasReleaseNames())

	_, err = MakeIDStrs(batch)
	assert.ErrorIs(t, err, ErrMissingColumn)

	ids, err := MakeIDStrs(batch, WithoutReleaseName())
	require.NoError(t, err)
	assert.Equal(t, []string{"1_a"}, ids)
}

func TestNewBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		releaseNames []any
		tileIndices  []any
		objectIDs    []any
		wantLen      int
		wantErr      bool
	}{
		{
			name:         "all columns",
			releaseNames: []any{"Q1", "Q1"},
			tileIndices:  []any{1, 2},
			objectIDs:    []any{"a", "b"},
			wantLen:      2,
		},
		{
			name:        "without release names",
			tileIndices: []any{1},
			objectIDs:   []any{"a"},
			wantLen:     1,
		},
		{
			name:        "object ids shorter",
			tileIndices: []any{1, 2},
			objectIDs:   []any{"a"},
			wantErr:     true,
		},
		{
			name:         "release names shorter",
			releaseNames: []any{"Q1"},
			tileIndices:  []any{1, 2},
			objectIDs:    []any{"a", "b"},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			batch, err := NewBatch(tt.releaseNames, tt.tileIndices, tt.objectIDs)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrColumnLength)
				assert.Nil(t, batch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, batch.Len())
		})
	}
}

func TestCastErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := MakeIDStrs(BatchFromRecords(Record{ReleaseName: "Q1", TileIndex: "abc", ObjectID: "a"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")
	assert.Contains(t, err.Error(), "column tile_index")
	assert.Contains(t, err.Error(), `"abc"`)
}
