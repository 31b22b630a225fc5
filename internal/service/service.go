// Package service defines the provider interface real deployments
// implement against their own data stores, and the registry that maps
// entry types to implementations.
package service

import (
	"context"
	"errors"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
)

// ErrNotFound distinguishes an absent single record from a failed lookup.
var ErrNotFound = errors.New("record not found")

// Service is the capability set a data backend exposes for one entry
// type. Records are opaque to the core; they are serialized as-is into
// result sets.
type Service interface {
	Query(ctx context.Context, body model.BeaconRequestBody) ([]any, error)
	Count(ctx context.Context, body model.BeaconRequestBody) (int, error)
	Exists(ctx context.Context, body model.BeaconRequestBody) (bool, error)
	GetByID(ctx context.Context, id string) (any, error)
}

// Registry maps entry-type tags to backends. A tag with no entry is a
// deliberately unimplemented backend: endpoint handlers answer those with
// valid empty envelopes instead of errors. Registration happens at wiring
// time; lookups afterwards are read-only, so no locking.
type Registry struct {
	services map[string]Service
}

func NewRegistry() *Registry {
	return &Registry{services: make(map[string]Service)}
}

// Register installs (or replaces) the backend for a tag.
func (r *Registry) Register(tag string, svc Service) {
	r.services[tag] = svc
}

// Lookup returns the backend for a tag. The second return is false when
// no backend is wired.
func (r *Registry) Lookup(tag string) (Service, bool) {
	svc, ok := r.services[tag]
	return svc, ok
}

// Tags returns the registered entry-type tags.
func (r *Registry) Tags() []string {
	out := make([]string, 0, len(r.services))
	for tag := range r.services {
		out = append(out, tag)
	}
	return out
}
