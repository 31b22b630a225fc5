package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
	"github.com/openbiodata/beacon-api/internal/service"
)

func newStore(t *testing.T, n int) *Store {
	t.Helper()
	recs := make([]any, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, map[string]any{"id": string(rune('a' + i))})
	}
	s, err := New(recs...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func reqPage(skip, limit int) model.BeaconRequestBody {
	return model.BeaconRequestBody{
		Meta: model.RequestMeta{Pagination: &model.Pagination{Skip: skip, Limit: limit}},
	}
}

func TestQuery_Pagination(t *testing.T) {
	s := newStore(t, 5)
	ctx := context.Background()

	page, err := s.Query(ctx, reqPage(1, 2))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("len=%d want 2", len(page))
	}
	if page[0].(map[string]any)["id"] != "b" {
		t.Fatalf("page[0]=%v want b", page[0])
	}

	// skip past the end yields an empty page, not an error
	page, err = s.Query(ctx, reqPage(10, 2))
	if err != nil || len(page) != 0 {
		t.Fatalf("page=%v err=%v want empty", page, err)
	}
}

func TestQuery_TypedRecordsFlattened(t *testing.T) {
	s, err := New(model.Individual{ID: "ind-1", Sex: "FEMALE"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	page, err := s.Query(context.Background(), reqPage(0, 10))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	rec := page[0].(map[string]any)
	if rec["id"] != "ind-1" || rec["sex"] != "FEMALE" {
		t.Fatalf("rec=%v", rec)
	}
}

func TestCountExists(t *testing.T) {
	s := newStore(t, 3)
	ctx := context.Background()
	if n, _ := s.Count(ctx, model.BeaconRequestBody{}); n != 3 {
		t.Fatalf("count=%d want 3", n)
	}
	if ok, _ := s.Exists(ctx, model.BeaconRequestBody{}); !ok {
		t.Fatal("exists=false want true")
	}

	empty, _ := New()
	if ok, _ := empty.Exists(ctx, model.BeaconRequestBody{}); ok {
		t.Fatal("exists=true want false for empty store")
	}
}

func TestGetByID(t *testing.T) {
	s := newStore(t, 3)
	rec, err := s.GetByID(context.Background(), "b")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rec.(map[string]any)["id"] != "b" {
		t.Fatalf("rec=%v", rec)
	}

	_, err = s.GetByID(context.Background(), "zz")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}
