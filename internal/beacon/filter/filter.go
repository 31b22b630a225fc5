// Package filter converts raw Beacon v2 filter expressions into normalized
// filtering terms.
//
// Two input dialects exist because GET requests cannot carry structured
// JSON bodies: POST bodies (and the filters query parameter, when it looks
// like JSON) use filter objects directly, while the GET grammar is a
// compact comma-separated string. Parse erases that distinction so
// everything downstream sees the same FilteringTerm values.
package filter

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
)

// SyntaxError reports malformed JSON in a filters expression.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "invalid JSON in filters parameter: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// FormatError reports input that is well-formed but does not conform to
// the filter grammar.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "invalid filter format: " + e.Reason + ": " + e.Err.Error()
	}
	return "invalid filter format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// Operator tokens in match precedence order. Two-character tokens come
// first so ">=" is never split as ">".
var operators = []string{">=", "<=", "=", ">", "<", "!"}

// Parse turns a raw filters expression into an ordered list of filtering
// terms. Empty or whitespace-only input yields (nil, nil): the absence of
// filters is not an error. Input whose trimmed form starts with '[' or '{'
// is treated as JSON; anything else as the compact comma-separated
// grammar.
func Parse(raw string) ([]model.FilteringTerm, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return parseJSON(trimmed)
	}
	return parseCompact(trimmed)
}

func parseJSON(s string) ([]model.FilteringTerm, error) {
	if strings.HasPrefix(s, "{") {
		term, err := parseJSONObject([]byte(s))
		if err != nil {
			return nil, err
		}
		return []model.FilteringTerm{term}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil {
		return nil, classifyJSONErr(err)
	}

	terms := make([]model.FilteringTerm, 0, len(elems))
	for _, el := range elems {
		if !strings.HasPrefix(strings.TrimSpace(string(el)), "{") {
			return nil, &FormatError{Reason: "JSON filters must be an object or array of objects"}
		}
		term, err := parseJSONObject(el)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func parseJSONObject(raw []byte) (model.FilteringTerm, error) {
	var term model.FilteringTerm
	if err := json.Unmarshal(raw, &term); err != nil {
		return model.FilteringTerm{}, classifyJSONErr(err)
	}
	if term.ID == "" {
		return model.FilteringTerm{}, &FormatError{Reason: `filter object is missing required field "id"`}
	}
	return term, nil
}

// classifyJSONErr maps decoder failures onto the filter error taxonomy:
// shape mismatches are format errors, everything else (truncated or
// malformed text) is a syntax error.
func classifyJSONErr(err error) error {
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return &FormatError{Reason: "JSON filters must be an object or array of objects", Err: err}
	}
	return &SyntaxError{Err: err}
}

func parseCompact(s string) ([]model.FilteringTerm, error) {
	var terms []model.FilteringTerm
	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		terms = append(terms, parseSegment(seg))
	}
	// Zero surviving segments (e.g. ",,,") collapse to the same state as
	// no filters supplied at all.
	if len(terms) == 0 {
		return nil, nil
	}
	return terms, nil
}

// parseSegment scans one compact segment for an operator token. The
// operator may be introduced by a colon (id:>=value) or by an underscore
// (id_>=value); the colon form wins. A match needs two non-empty halves,
// otherwise the whole segment is a bare ontology identifier.
func parseSegment(seg string) model.FilteringTerm {
	for _, op := range operators {
		var sep string
		switch {
		case strings.Contains(seg, ":"+op):
			sep = ":" + op
		case strings.Contains(seg, "_"+op):
			sep = "_" + op
		default:
			continue
		}
		left, right, _ := strings.Cut(seg, sep)
		if left == "" || right == "" {
			break
		}
		return model.FilteringTerm{
			ID:       canonicalID(left),
			Operator: op,
			Value:    coerceValue(right),
		}
	}
	return model.FilteringTerm{ID: canonicalID(seg)}
}

// canonicalID rewrites underscore-separated compact identifiers
// (PATO_0000011) to CURIE colon form (PATO:0000011). Idempotent: an
// already-colon form has no underscores to replace.
func canonicalID(id string) string {
	return strings.ReplaceAll(id, "_", ":")
}

// coerceValue applies the compact-grammar numeric coercion: float when the
// value contains a '.' and is not a %wildcard% pattern, int when it is all
// digits, string otherwise. Coercion failure falls back to string, never
// an error. The JSON path deliberately never coerces.
func coerceValue(v string) any {
	if strings.Contains(v, ".") && !strings.HasPrefix(v, "%") {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return v
	}
	if isDigits(v) {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return v
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IDs projects filtering terms onto their id strings for request-echo
// metadata. The projection is deliberately lossy: operator and value are
// not echoed. Always returns a non-nil slice so the echo serializes as []
// rather than null.
func IDs(terms []model.FilteringTerm) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.ID != "" {
			out = append(out, t.ID)
		}
	}
	return out
}

// BuildRequest is the single construction point for GET-style listing
// requests: pagination, granularity and the parsed filters converge on the
// same BeaconRequestBody shape POST bodies decode into.
func BuildRequest(skip, limit int, granularity model.Granularity, rawFilters string) (model.BeaconRequestBody, error) {
	terms, err := Parse(rawFilters)
	if err != nil {
		return model.BeaconRequestBody{}, err
	}
	body := model.BeaconRequestBody{
		Meta: model.RequestMeta{
			RequestedGranularity: granularity,
			Pagination:           &model.Pagination{Skip: skip, Limit: limit},
		},
		Filters: terms,
	}
	body.Normalize()
	return body, nil
}
