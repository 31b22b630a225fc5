// Package response assembles Beacon v2 response envelopes. Each call is a
// pure one-shot transformation from (granularity, result data) to exactly
// one envelope variant; there is no shared state.
package response

import (
	"github.com/openbiodata/beacon-api/internal/beacon/catalog"
	"github.com/openbiodata/beacon-api/internal/beacon/filter"
	"github.com/openbiodata/beacon-api/internal/beacon/model"
)

// Assembler stamps envelopes with the beacon's identity.
type Assembler struct {
	BeaconID   string
	APIVersion string
}

// Echo carries the request attributes reflected into
// meta.receivedRequestSummary.
type Echo struct {
	Granularity               model.Granularity
	Pagination                model.Pagination
	Filters                   []model.FilteringTerm
	IncludeResultsetResponses string
	RequestParameters         map[string]any
}

// EchoFrom derives an Echo from a normalized request body.
func EchoFrom(body model.BeaconRequestBody) Echo {
	e := Echo{
		Granularity:               body.Meta.RequestedGranularity,
		Filters:                   body.Filters,
		IncludeResultsetResponses: body.Meta.IncludeResultsetResponses,
	}
	if body.Meta.Pagination != nil {
		e.Pagination = *body.Meta.Pagination
	}
	return e
}

func (a *Assembler) meta(et catalog.EntryType, echo Echo) model.ResponseMeta {
	schemas := catalog.SchemaReference(et)
	return model.ResponseMeta{
		BeaconID:            a.BeaconID,
		APIVersion:          a.APIVersion,
		ReturnedGranularity: echo.Granularity,
		ReceivedRequestSummary: model.ReceivedRequestSummary{
			APIVersion:                a.APIVersion,
			RequestedSchemas:          schemas,
			Pagination:                echo.Pagination,
			RequestedGranularity:      echo.Granularity,
			Filters:                   filter.IDs(echo.Filters),
			IncludeResultsetResponses: echo.IncludeResultsetResponses,
			RequestParameters:         echo.RequestParameters,
		},
		ReturnedSchemas: schemas,
	}
}

// Boolean builds the existence-only envelope. numTotalResults is omitted,
// not zero.
func (a *Assembler) Boolean(et catalog.EntryType, echo Echo, exists bool) model.BooleanEnvelope {
	return model.BooleanEnvelope{
		Meta:            a.meta(et, echo),
		ResponseSummary: model.ResponseSummary{Exists: exists},
	}
}

// Count builds the count-only envelope; exists is derived from the count.
func (a *Assembler) Count(et catalog.EntryType, echo Echo, count int) model.CountEnvelope {
	return model.CountEnvelope{
		Meta:            a.meta(et, echo),
		ResponseSummary: model.ResponseSummary{Exists: count > 0, NumTotalResults: &count},
	}
}

// Resultsets wraps full records in a single result set named after the
// entry type.
func (a *Assembler) Resultsets(et catalog.EntryType, echo Echo, results []any) model.ResultsetsEnvelope {
	if results == nil {
		results = []any{}
	}
	n := len(results)
	return model.ResultsetsEnvelope{
		Meta:            a.meta(et, echo),
		ResponseSummary: model.ResponseSummary{Exists: n > 0, NumTotalResults: &n},
		Response: model.ResultsetsBody{
			ResultSets: []model.ResultSet{{
				ID:          et.Tag,
				SetType:     et.Tag,
				Exists:      n > 0,
				ResultCount: n,
				Results:     results,
			}},
		},
	}
}

// Collections is the record-level shape for collection-typed entry types.
func (a *Assembler) Collections(et catalog.EntryType, echo Echo, items []any) model.CollectionsEnvelope {
	if items == nil {
		items = []any{}
	}
	n := len(items)
	return model.CollectionsEnvelope{
		Meta:            a.meta(et, echo),
		ResponseSummary: model.ResponseSummary{Exists: n > 0, NumTotalResults: &n},
		Response:        model.CollectionsBody{Collections: items},
	}
}

// Records dispatches record-granularity results to the collections or
// resultsets shape depending on the entry type.
func (a *Assembler) Records(et catalog.EntryType, echo Echo, results []any) model.Envelope {
	if et.Collection {
		return a.Collections(et, echo, results)
	}
	return a.Resultsets(et, echo, results)
}

// Empty produces the structurally valid "no backend wired" envelope for a
// deliberately unimplemented data service. Protocol conformance suites
// expect well-formed zero-result responses here, never a 5xx.
func (a *Assembler) Empty(et catalog.EntryType, echo Echo) model.Envelope {
	switch echo.Granularity {
	case model.GranularityBoolean:
		return a.Boolean(et, echo, false)
	case model.GranularityCount:
		return a.Count(et, echo, 0)
	default:
		return a.Records(et, echo, nil)
	}
}
