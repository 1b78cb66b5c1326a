package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidSetRecord = errors.New("invalid set record")
	ErrSetOutOfRange    = errors.New("set index out of range")
)

type SetRecordKind int

const (
	SetRecordUnknown SetRecordKind = iota
	SetRecordCount
	SetRecordList
	SetRecordDetailed
)

func (k SetRecordKind) String() string {
	switch k {
	case SetRecordCount:
		return "count"
	case SetRecordList:
		return "list"
	case SetRecordDetailed:
		return "detailed"
	default:
		return "unknown"
	}
}

const setKeyPrefix = "set"

// maxSetCount caps decoded counts so oversized numbers stay positive.
const maxSetCount = math.MaxInt32

type SetDetail struct {
	Reps      int  `json:"reps"`
	Completed bool `json:"completed"`
}

// SetRecord is the progress stored for one exercise on one day. Three payload
// shapes have been written over time: a plain count of sets, a list of
// completed set numbers, and a map of "setN" to reps/completed. The shape is
// resolved once when the record is decoded.
type SetRecord struct {
	Kind   SetRecordKind
	Count  int
	Sets   []int
	Detail map[string]SetDetail

	raw json.RawMessage
}

func CountRecord(n int) SetRecord {
	return SetRecord{Kind: SetRecordCount, Count: n}
}

func ListRecord(sets ...int) SetRecord {
	return SetRecord{Kind: SetRecordList, Sets: normalizeSetList(sets)}
}

func DetailedRecord(detail map[string]SetDetail) SetRecord {
	if detail == nil {
		detail = map[string]SetDetail{}
	}
	return SetRecord{Kind: SetRecordDetailed, Detail: detail}
}

// IsComplete reports whether at least one set was done.
func (r SetRecord) IsComplete() bool {
	return r.CompletedSets() > 0
}

func (r SetRecord) CompletedSets() int {
	switch r.Kind {
	case SetRecordCount:
		if r.Count < 0 {
			return 0
		}
		return r.Count
	case SetRecordList:
		return len(r.Sets)
	case SetRecordDetailed:
		n := 0
		for key, d := range r.Detail {
			if strings.HasPrefix(key, setKeyPrefix) && d.Completed {
				n++
			}
		}
		return n
	default:
		return 0
	}
}

// Normalize checks a record written by a client against the exercise it
// belongs to. Counts above the prescribed sets are clamped.
func (r SetRecord) Normalize(maxSets int) (SetRecord, error) {
	switch r.Kind {
	case SetRecordCount:
		if r.Count < 0 {
			return SetRecord{}, fmt.Errorf("%w: negative set count %d", ErrInvalidSetRecord, r.Count)
		}
		return CountRecord(min(r.Count, maxSets)), nil

	case SetRecordList:
		for _, s := range r.Sets {
			if s < 1 || s > maxSets {
				return SetRecord{}, fmt.Errorf("%w: set %d (max %d)", ErrSetOutOfRange, s, maxSets)
			}
		}
		return ListRecord(r.Sets...), nil

	case SetRecordDetailed:
		clean := make(map[string]SetDetail, len(r.Detail))
		for key, d := range r.Detail {
			n, err := setNumber(key)
			if err != nil {
				return SetRecord{}, err
			}
			if n < 1 || n > maxSets {
				return SetRecord{}, fmt.Errorf("%w: %s (max %d)", ErrSetOutOfRange, key, maxSets)
			}
			if d.Reps < 0 {
				return SetRecord{}, fmt.Errorf("%w: negative reps for %s", ErrInvalidSetRecord, key)
			}
			clean[key] = d
		}
		return DetailedRecord(clean), nil

	default:
		return SetRecord{}, fmt.Errorf("%w: unsupported shape %s", ErrInvalidSetRecord, string(r.raw))
	}
}

func setNumber(key string) (int, error) {
	if !strings.HasPrefix(key, setKeyPrefix) {
		return 0, fmt.Errorf("%w: key %q must look like set1, set2, ...", ErrInvalidSetRecord, key)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, setKeyPrefix))
	if err != nil {
		return 0, fmt.Errorf("%w: key %q must look like set1, set2, ...", ErrInvalidSetRecord, key)
	}
	return n, nil
}

func normalizeSetList(sets []int) []int {
	if len(sets) == 0 {
		return []int{}
	}
	seen := make(map[int]bool, len(sets))
	out := make([]int, 0, len(sets))
	for _, s := range sets {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out
}

// UnmarshalJSON never fails on an unexpected shape: historical rows must stay
// readable, so anything unrecognised decodes as an unknown, never-complete record.
func (r *SetRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*r = SetRecord{raw: append(json.RawMessage(nil), trimmed...)}
	if len(trimmed) == 0 {
		return nil
	}

	switch c := trimmed[0]; {
	case c == '[':
		var items []float64
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		sets := make([]int, 0, len(items))
		for _, f := range items {
			sets = append(sets, int(f))
		}
		*r = ListRecord(sets...)

	case c == '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil
		}
		detail := make(map[string]SetDetail, len(fields))
		for key, val := range fields {
			if !strings.HasPrefix(key, setKeyPrefix) {
				continue
			}
			var d SetDetail
			if err := json.Unmarshal(val, &d); err != nil {
				continue
			}
			detail[key] = d
		}
		*r = DetailedRecord(detail)

	case c == '-' || (c >= '0' && c <= '9'):
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return nil
		}
		count := 0
		switch {
		case f >= maxSetCount:
			count = maxSetCount
		case f > 0:
			count = int(math.Ceil(f))
		}
		*r = CountRecord(count)
	}

	return nil
}

func (r SetRecord) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case SetRecordCount:
		return json.Marshal(r.Count)
	case SetRecordList:
		return json.Marshal(normalizeSetList(r.Sets))
	case SetRecordDetailed:
		if r.Detail == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(r.Detail)
	default:
		if len(r.raw) > 0 {
			return r.raw, nil
		}
		return []byte("null"), nil
	}
}
