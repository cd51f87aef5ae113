package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"tableflip.dev/pilot/pkg/collection"
)

// CurrentSchema is written on every stored record.
const CurrentSchema = "v1"

// ErrNotFound is returned when no record matches a collection and id.
var ErrNotFound = errors.New("store: record not found")

// Record is the stored envelope around one planner item.
type Record struct {
	Schema     string          `json:"schema"`
	Collection collection.Type `json:"collection"`
	ID         string          `json:"id"`
	Created    time.Time       `json:"created"`
	Body       json.RawMessage `json:"body"`
}

// NewRecord encodes body into a record for the given collection.
func NewRecord(c collection.Type, id string, created time.Time, body interface{}) (*Record, error) {
	if id == "" {
		return nil, errors.New("store: record id required")
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("store: encode %s/%s: %w", c, id, err)
	}
	return &Record{
		Schema:     CurrentSchema,
		Collection: c,
		ID:         id,
		Created:    created,
		Body:       data,
	}, nil
}

// Decode unmarshals the record body into v.
func (r *Record) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("store: decode %s/%s: %w", r.Collection, r.ID, err)
	}
	return nil
}

func (r *Record) clone() *Record {
	cp := *r
	cp.Body = append(json.RawMessage(nil), r.Body...)
	return &cp
}

// sortRecords orders by creation time, then id.
func sortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		left := records[i]
		right := records[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Created
		rt := right.Created
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}
