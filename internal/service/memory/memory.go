// Package memory provides an in-memory Service backed by fixed records.
// It exists so a fresh checkout can answer queries and conformance probes
// without a real data store; filter evaluation is out of scope and only
// pagination is applied.
package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
	"github.com/openbiodata/beacon-api/internal/service"
)

// Store serves a fixed record slice. Records must carry an "id" field to
// support GetByID.
type Store struct {
	records []map[string]any
}

// New copies the given records into a Store. Typed entity values are
// accepted and flattened through their JSON form.
func New(records ...any) (*Store, error) {
	out := make([]map[string]any, 0, len(records))
	for i, rec := range records {
		m, err := toMap(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, m)
	}
	return &Store{records: out}, nil
}

func toMap(rec any) (map[string]any, error) {
	if m, ok := rec.(map[string]any); ok {
		return m, nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

func (s *Store) Query(_ context.Context, body model.BeaconRequestBody) ([]any, error) {
	skip, limit := model.DefaultSkip, model.DefaultLimit
	if body.Meta.Pagination != nil {
		skip, limit = body.Meta.Pagination.Skip, body.Meta.Pagination.Limit
	}
	if skip >= len(s.records) {
		return []any{}, nil
	}
	end := skip + limit
	if end > len(s.records) {
		end = len(s.records)
	}
	page := make([]any, 0, end-skip)
	for _, rec := range s.records[skip:end] {
		page = append(page, rec)
	}
	return page, nil
}

func (s *Store) Count(context.Context, model.BeaconRequestBody) (int, error) {
	return len(s.records), nil
}

func (s *Store) Exists(context.Context, model.BeaconRequestBody) (bool, error) {
	return len(s.records) > 0, nil
}

func (s *Store) GetByID(_ context.Context, id string) (any, error) {
	for _, rec := range s.records {
		if rid, ok := rec["id"].(string); ok && rid == id {
			return rec, nil
		}
	}
	return nil, service.ErrNotFound
}
