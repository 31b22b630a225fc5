// Package api implements the Beacon v2 HTTP endpoints: entity listings,
// single-record lookups, POST queries and the informational endpoints.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openbiodata/beacon-api/internal/beacon/catalog"
	"github.com/openbiodata/beacon-api/internal/beacon/filter"
	"github.com/openbiodata/beacon-api/internal/beacon/model"
	"github.com/openbiodata/beacon-api/internal/beacon/response"
	"github.com/openbiodata/beacon-api/internal/core/config"
	obs "github.com/openbiodata/beacon-api/internal/core/observability"
	"github.com/openbiodata/beacon-api/internal/service"
)

type API struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *service.Registry
	asm      *response.Assembler
}

func New(cfg config.Config, logger *slog.Logger, registry *service.Registry) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		asm:      &response.Assembler{BeaconID: cfg.BeaconID, APIVersion: cfg.APIVersion},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": model.BeaconError{ErrorCode: status, ErrorMessage: msg},
	})
}

// List serves GET on an entry-type root. Listings default to record
// granularity; requestedGranularity overrides it.
func (a *API) List(et catalog.EntryType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, limit, err := parsePagination(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		granularity := model.GranularityRecord
		if raw := strings.TrimSpace(r.URL.Query().Get("requestedGranularity")); raw != "" {
			granularity, err = model.ParseGranularity(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		body, err := filter.BuildRequest(skip, limit, granularity, r.URL.Query().Get("filters"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if et.Tag == catalog.TagGenomicVariation {
			q, err := parseGenomicQuery(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			body.Query = q
		}

		a.respond(w, r, et, body, true)
	}
}

// Query serves POST on an entry-type root with a full request body.
func (a *API) Query(et catalog.EntryType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body model.BeaconRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if err := validateBody(body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		body.Normalize()
		a.respond(w, r, et, body, false)
	}
}

// GetOne serves GET on a single-record endpoint.
func (a *API) GetOne(et catalog.EntryType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		svc, ok := a.registry.Lookup(et.Tag)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no %s with id %q", et.Tag, id))
			return
		}

		rec, err := svc.GetByID(r.Context(), id)
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no %s with id %q", et.Tag, id))
			return
		}
		if err != nil {
			a.logger.Error("get by id failed", "entry_type", et.Tag, "id", id, "err", err)
			writeError(w, http.StatusInternalServerError, "query failed")
			return
		}

		var body model.BeaconRequestBody
		body.Normalize()
		body.Meta.RequestedGranularity = model.GranularityRecord
		echo := response.EchoFrom(body)
		writeJSON(w, http.StatusOK, a.asm.Records(et, echo, []any{rec}))
	}
}

// respond dispatches a normalized request to the entry type's backend and
// writes the envelope matching the requested granularity. A missing
// backend answers with a valid empty envelope, never an error status.
// Collection-typed entry types use the collections shape only when
// listing; POST queries always answer with result sets.
func (a *API) respond(w http.ResponseWriter, r *http.Request, et catalog.EntryType, body model.BeaconRequestBody, listing bool) {
	echo := response.EchoFrom(body)
	if body.Query != nil {
		echo.RequestParameters = queryParameters(body.Query)
	}
	granularity := body.Meta.RequestedGranularity

	svc, ok := a.registry.Lookup(et.Tag)
	if !ok {
		if !listing && granularity == model.GranularityRecord {
			writeJSON(w, http.StatusOK, a.asm.Resultsets(et, echo, nil))
			return
		}
		writeJSON(w, http.StatusOK, a.asm.Empty(et, echo))
		return
	}

	var (
		env model.Envelope
		err error
	)
	switch granularity {
	case model.GranularityBoolean:
		var exists bool
		exists, err = svc.Exists(r.Context(), body)
		env = a.asm.Boolean(et, echo, exists)
	case model.GranularityCount:
		var n int
		n, err = svc.Count(r.Context(), body)
		env = a.asm.Count(et, echo, n)
	default:
		var results []any
		results, err = svc.Query(r.Context(), body)
		if listing {
			env = a.asm.Records(et, echo, results)
		} else {
			env = a.asm.Resultsets(et, echo, results)
		}
	}

	obs.ObserveBeaconQuery(et.Tag, string(granularity), err)
	if err != nil {
		a.logger.Error("query failed", "entry_type", et.Tag, "granularity", granularity, "err", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func parsePagination(r *http.Request) (skip, limit int, err error) {
	skip, limit = model.DefaultSkip, model.DefaultLimit

	if raw := strings.TrimSpace(r.URL.Query().Get("skip")); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return 0, 0, fmt.Errorf("invalid skip %q (must be a non-negative integer)", raw)
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > model.MaxLimit {
			return 0, 0, fmt.Errorf("invalid limit %q (must be in [1,%d])", raw, model.MaxLimit)
		}
	}
	return skip, limit, nil
}

func validateBody(body model.BeaconRequestBody) error {
	if body.Meta.RequestedGranularity != "" {
		if _, err := model.ParseGranularity(string(body.Meta.RequestedGranularity)); err != nil {
			return err
		}
	}
	if p := body.Meta.Pagination; p != nil {
		if p.Skip < 0 {
			return fmt.Errorf("invalid skip %d (must be a non-negative integer)", p.Skip)
		}
		if p.Limit < 1 || p.Limit > model.MaxLimit {
			return fmt.Errorf("invalid limit %d (must be in [1,%d])", p.Limit, model.MaxLimit)
		}
	}
	for _, t := range body.Filters {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("invalid filter format: filter id is required")
		}
	}
	return nil
}

func parseGenomicQuery(r *http.Request) (*model.GenomicQuery, error) {
	q := &model.GenomicQuery{
		AssemblyID:     strings.TrimSpace(r.URL.Query().Get("assemblyId")),
		ReferenceName:  strings.TrimSpace(r.URL.Query().Get("referenceName")),
		ReferenceBases: strings.TrimSpace(r.URL.Query().Get("referenceBases")),
		AlternateBases: strings.TrimSpace(r.URL.Query().Get("alternateBases")),
		VariantType:    strings.TrimSpace(r.URL.Query().Get("variantType")),
	}
	var err error
	if q.Start, err = parseIntList(r.URL.Query().Get("start")); err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	if q.End, err = parseIntList(r.URL.Query().Get("end")); err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}
	if q.AssemblyID == "" && q.ReferenceName == "" && q.ReferenceBases == "" &&
		q.AlternateBases == "" && q.VariantType == "" && len(q.Start) == 0 && len(q.End) == 0 {
		return nil, nil
	}
	return q, nil
}

func parseIntList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", p)
		}
		out = append(out, n)
	}
	return out, nil
}

// queryParameters renders the genomic query for the request summary echo.
func queryParameters(q *model.GenomicQuery) map[string]any {
	b, err := json.Marshal(q)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
