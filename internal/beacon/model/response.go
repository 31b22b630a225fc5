package model

// SchemaReference points at the schema a set of results conforms to.
type SchemaReference struct {
	EntityType string `json:"entityType"`
	Schema     string `json:"schema"`
}

// BeaconError is the client-facing error payload.
type BeaconError struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// ReceivedRequestSummary echoes the request back in response metadata.
// Filters are rendered as id strings only; operator and value are
// intentionally not echoed.
type ReceivedRequestSummary struct {
	APIVersion                string            `json:"apiVersion"`
	RequestedSchemas          []SchemaReference `json:"requestedSchemas"`
	Pagination                Pagination        `json:"pagination"`
	RequestedGranularity      Granularity       `json:"requestedGranularity"`
	Filters                   []string          `json:"filters"`
	IncludeResultsetResponses string            `json:"includeResultsetResponses,omitempty"`
	RequestParameters         map[string]any    `json:"requestParameters,omitempty"`
}

// ResponseMeta is the meta block shared by every envelope variant.
type ResponseMeta struct {
	BeaconID               string                 `json:"beaconId"`
	APIVersion             string                 `json:"apiVersion"`
	ReturnedGranularity    Granularity            `json:"returnedGranularity"`
	ReceivedRequestSummary ReceivedRequestSummary `json:"receivedRequestSummary"`
	ReturnedSchemas        []SchemaReference      `json:"returnedSchemas"`
	TestMode               *bool                  `json:"testMode,omitempty"`
}

// ResponseSummary reports existence and, except at boolean granularity,
// the total result count. NumTotalResults is omitted, not zero, when the
// granularity is boolean.
type ResponseSummary struct {
	Exists          bool `json:"exists"`
	NumTotalResults *int `json:"numTotalResults,omitempty"`
}

// ResultSet is one named, typed collection of records.
type ResultSet struct {
	ID          string `json:"id"`
	SetType     string `json:"setType"`
	Exists      bool   `json:"exists"`
	ResultCount int    `json:"resultCount"`
	Results     []any  `json:"results"`
}

// Envelope is the closed set of response shapes. Exactly one variant is
// produced per request; the variants make invalid field combinations
// (e.g. a response block at boolean granularity) unrepresentable.
type Envelope interface {
	envelope()
}

// BooleanEnvelope answers "does anything match" with no counts.
type BooleanEnvelope struct {
	Meta            ResponseMeta    `json:"meta"`
	ResponseSummary ResponseSummary `json:"responseSummary"`
}

// CountEnvelope carries the total match count and nothing more.
type CountEnvelope struct {
	Meta            ResponseMeta    `json:"meta"`
	ResponseSummary ResponseSummary `json:"responseSummary"`
}

// ResultsetsEnvelope carries full records wrapped in result sets.
type ResultsetsEnvelope struct {
	Meta            ResponseMeta    `json:"meta"`
	ResponseSummary ResponseSummary `json:"responseSummary"`
	Response        ResultsetsBody  `json:"response"`
}

type ResultsetsBody struct {
	ResultSets []ResultSet `json:"resultSets"`
}

// CollectionsEnvelope is the record-level shape for collection-typed
// entry types (cohorts, datasets) when listed rather than queried.
type CollectionsEnvelope struct {
	Meta            ResponseMeta    `json:"meta"`
	ResponseSummary ResponseSummary `json:"responseSummary"`
	Response        CollectionsBody `json:"response"`
}

type CollectionsBody struct {
	Collections []any `json:"collections"`
}

func (BooleanEnvelope) envelope()     {}
func (CountEnvelope) envelope()       {}
func (ResultsetsEnvelope) envelope()  {}
func (CollectionsEnvelope) envelope() {}

// Organization describes the operator of this beacon.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	WelcomeURL  string `json:"welcomeUrl,omitempty"`
	ContactURL  string `json:"contactUrl,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

// BeaconInfo is the /info response payload.
type BeaconInfo struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	APIVersion     string       `json:"apiVersion"`
	Environment    string       `json:"environment"`
	Organization   Organization `json:"organization"`
	Description    string       `json:"description,omitempty"`
	Version        string       `json:"version,omitempty"`
	WelcomeURL     string       `json:"welcomeUrl,omitempty"`
	AlternativeURL string       `json:"alternativeUrl,omitempty"`
	CreateDateTime string       `json:"createDateTime,omitempty"`
	UpdateDateTime string       `json:"updateDateTime,omitempty"`
}

// InfoMeta is the lightweight meta block used by informational endpoints.
type InfoMeta struct {
	BeaconID        string            `json:"beaconId"`
	APIVersion      string            `json:"apiVersion"`
	ReturnedSchemas []SchemaReference `json:"returnedSchemas"`
}

// InfoResponse wraps an informational payload.
type InfoResponse struct {
	Meta     InfoMeta `json:"meta"`
	Response any      `json:"response"`
}
