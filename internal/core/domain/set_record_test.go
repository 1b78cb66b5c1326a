package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, raw string) SetRecord {
	t.Helper()
	var r SetRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return r
}

func TestSetRecord_UnmarshalDispatchesOnShape(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		kind      SetRecordKind
		completed int
	}{
		{"Plain count", `3`, SetRecordCount, 3},
		{"Zero count", `0`, SetRecordCount, 0},
		{"Negative count reads as zero", `-2`, SetRecordCount, 0},
		{"Fractional count rounds up", `1.2`, SetRecordCount, 2},
		{"Huge count saturates", `1e20`, SetRecordCount, math.MaxInt32},
		{"List of set numbers", `[1, 3]`, SetRecordList, 2},
		{"Duplicated set numbers", `[2, 2, 1]`, SetRecordList, 2},
		{"Empty list", `[]`, SetRecordList, 0},
		{"Detailed record", `{"set1":{"reps":8,"completed":true},"set2":{"reps":5,"completed":false}}`, SetRecordDetailed, 1},
		{"Detailed ignores foreign keys", `{"note":"felt good","set1":{"reps":8,"completed":true}}`, SetRecordDetailed, 1},
		{"Detailed with malformed set", `{"set1":"yes","set2":{"completed":true}}`, SetRecordDetailed, 1},
		{"String is unknown", `"done"`, SetRecordUnknown, 0},
		{"Boolean is unknown", `true`, SetRecordUnknown, 0},
		{"Null is unknown", `null`, SetRecordUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := decodeRecord(t, tt.raw)
			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, tt.completed, r.CompletedSets())
			assert.Equal(t, tt.completed > 0, r.IsComplete())
		})
	}
}

func TestSetRecord_ShapesAreEquivalent(t *testing.T) {
	count := decodeRecord(t, `2`)
	list := decodeRecord(t, `[1,2]`)
	detailed := decodeRecord(t, `{"set1":{"reps":8,"completed":true},"set2":{"reps":8,"completed":true},"set3":{"reps":0,"completed":false}}`)

	assert.Equal(t, count.CompletedSets(), list.CompletedSets())
	assert.Equal(t, list.CompletedSets(), detailed.CompletedSets())
	assert.True(t, count.IsComplete() && list.IsComplete() && detailed.IsComplete())
}

func TestSetRecord_MarshalKeepsVariant(t *testing.T) {
	out, err := json.Marshal(CountRecord(2))
	require.NoError(t, err)
	assert.JSONEq(t, `2`, string(out))

	out, err = json.Marshal(ListRecord(3, 1, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,3]`, string(out))

	out, err = json.Marshal(DetailedRecord(map[string]SetDetail{"set1": {Reps: 6, Completed: true}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"set1":{"reps":6,"completed":true}}`, string(out))

	unknown := decodeRecord(t, `"done"`)
	out, err = json.Marshal(unknown)
	require.NoError(t, err)
	assert.JSONEq(t, `"done"`, string(out))
}

func TestSetRecord_Normalize(t *testing.T) {
	t.Run("Count is clamped to the prescribed sets", func(t *testing.T) {
		r, err := CountRecord(7).Normalize(3)
		require.NoError(t, err)
		assert.Equal(t, 3, r.Count)
	})

	t.Run("Oversized decoded count is clamped", func(t *testing.T) {
		r, err := decodeRecord(t, `1e20`).Normalize(3)
		require.NoError(t, err)
		assert.Equal(t, 3, r.Count)
	})

	t.Run("Negative count is rejected", func(t *testing.T) {
		_, err := CountRecord(-1).Normalize(3)
		assert.ErrorIs(t, err, ErrInvalidSetRecord)
	})

	t.Run("List outside the range is rejected", func(t *testing.T) {
		_, err := ListRecord(1, 4).Normalize(3)
		assert.ErrorIs(t, err, ErrSetOutOfRange)

		_, err = ListRecord(0).Normalize(3)
		assert.ErrorIs(t, err, ErrSetOutOfRange)
	})

	t.Run("List is sorted and deduplicated", func(t *testing.T) {
		r, err := SetRecord{Kind: SetRecordList, Sets: []int{3, 1, 3}}.Normalize(3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, r.Sets)
	})

	t.Run("Detailed keys must name a set in range", func(t *testing.T) {
		_, err := DetailedRecord(map[string]SetDetail{"set4": {Completed: true}}).Normalize(3)
		assert.ErrorIs(t, err, ErrSetOutOfRange)

		_, err = DetailedRecord(map[string]SetDetail{"first": {Completed: true}}).Normalize(3)
		assert.ErrorIs(t, err, ErrInvalidSetRecord)

		_, err = DetailedRecord(map[string]SetDetail{"set1": {Reps: -3}}).Normalize(3)
		assert.ErrorIs(t, err, ErrInvalidSetRecord)

		r, err := DetailedRecord(map[string]SetDetail{"set2": {Reps: 8, Completed: true}}).Normalize(3)
		require.NoError(t, err)
		assert.Equal(t, 1, r.CompletedSets())
	})

	t.Run("Unknown shape cannot be written", func(t *testing.T) {
		_, err := decodeRecord(t, `"done"`).Normalize(3)
		assert.ErrorIs(t, err, ErrInvalidSetRecord)
	})
}
