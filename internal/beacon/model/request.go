// Package model defines the Beacon v2 request and response data model.
// External JSON field names are camelCase per the Beacon v2 specification
// and must not change.
package model

import "fmt"

// Granularity is the level of detail requested for, or returned in, a
// Beacon response.
type Granularity string

const (
	GranularityBoolean Granularity = "boolean"
	GranularityCount   Granularity = "count"
	GranularityRecord  Granularity = "record"
)

// ParseGranularity validates a raw granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityBoolean, GranularityCount, GranularityRecord:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("invalid granularity %q (must be boolean, count or record)", s)
	}
}

// FilteringTerm is one atomic query constraint: either an ontology
// membership test (id only) or an operator/value comparison.
//
// The pairing of Operator and Value is deliberately not enforced: the
// compact-string grammar can only produce both or neither, but JSON input
// carrying one without the other is accepted unchanged.
type FilteringTerm struct {
	ID       string `json:"id"`
	Operator string `json:"operator,omitempty"`
	// Value is a scalar: string always on the JSON path; the compact
	// string path coerces to int64 or float64 where the value looks
	// numeric.
	Value                  any    `json:"value,omitempty"`
	IncludeDescendantTerms *bool  `json:"includeDescendantTerms,omitempty"`
	Similarity             string `json:"similarity,omitempty"`
	Scope                  string `json:"scope,omitempty"`
}

// Pagination bounds a listing. Skip >= 0, Limit in [1,100]; enforced at
// input binding, defaulted by Normalize.
type Pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MaxLimit     = 100
)

// RequestMeta carries the caller-selected response shape.
type RequestMeta struct {
	RequestedGranularity      Granularity `json:"requestedGranularity,omitempty"`
	IncludeResultsetResponses string      `json:"includeResultsetResponses,omitempty"`
	Pagination                *Pagination `json:"pagination,omitempty"`
}

// GenomicQuery holds the structured assembly/position/variant constraints
// used only by the genomic-variation entry type.
type GenomicQuery struct {
	AssemblyID       string `json:"assemblyId,omitempty"`
	ReferenceName    string `json:"referenceName,omitempty"`
	ReferenceBases   string `json:"referenceBases,omitempty"`
	AlternateBases   string `json:"alternateBases,omitempty"`
	Start            []int  `json:"start,omitempty"`
	End              []int  `json:"end,omitempty"`
	VariantType      string `json:"variantType,omitempty"`
	VariantMinLength *int   `json:"variantMinLength,omitempty"`
	VariantMaxLength *int   `json:"variantMaxLength,omitempty"`
}

// BeaconRequestBody is the unified internal query representation. GET
// query parameters and POST bodies both converge on this type before
// reaching a data service.
type BeaconRequestBody struct {
	Meta    RequestMeta     `json:"meta"`
	Query   *GenomicQuery   `json:"query,omitempty"`
	Filters []FilteringTerm `json:"filters,omitempty"`
}

// Normalize fills defaults so downstream code can rely on granularity,
// includeResultsetResponses and pagination always being present.
func (b *BeaconRequestBody) Normalize() {
	if b.Meta.RequestedGranularity == "" {
		b.Meta.RequestedGranularity = GranularityBoolean
	}
	if b.Meta.IncludeResultsetResponses == "" {
		b.Meta.IncludeResultsetResponses = "HIT"
	}
	if b.Meta.Pagination == nil {
		b.Meta.Pagination = &Pagination{Skip: DefaultSkip, Limit: DefaultLimit}
	}
}
