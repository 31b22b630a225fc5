// Package catalog holds the fixed table of Beacon v2 entry types and the
// static configuration, entry-types and map payloads derived from it.
package catalog

import (
	"strings"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
)

// EntryType describes one of the fixed Beacon entity categories.
type EntryType struct {
	Tag        string // internal tag, e.g. "individual"
	Name       string
	Schema     string
	RootPath   string
	SinglePath string // empty when no single-record endpoint exists
	// Collection marks entry types whose record-level listings use the
	// collections envelope instead of result sets.
	Collection bool
}

const (
	TagIndividual       = "individual"
	TagBiosample        = "biosample"
	TagGenomicVariation = "genomicVariation"
	TagAnalysis         = "analysis"
	TagCohort           = "cohort"
	TagDataset          = "dataset"
	TagRun              = "run"
)

// EntryTypes lists every entry type in route-mount order.
var EntryTypes = []EntryType{
	{Tag: TagIndividual, Name: "Individual", Schema: "tmp/bundled_schemas/individual.json", RootPath: "/api/individuals", SinglePath: "/api/individuals/{id}"},
	{Tag: TagBiosample, Name: "Biosample", Schema: "tmp/bundled_schemas/biosample.json", RootPath: "/api/biosamples", SinglePath: "/api/biosamples/{id}"},
	{Tag: TagGenomicVariation, Name: "Genomic Variation", Schema: "tmp/bundled_schemas/genomicVariation.json", RootPath: "/api/g_variants", SinglePath: "/api/g_variants/{id}"},
	{Tag: TagAnalysis, Name: "Analysis", Schema: "tmp/bundled_schemas/analysis.json", RootPath: "/api/analyses"},
	{Tag: TagRun, Name: "Run", Schema: "tmp/bundled_schemas/run.json", RootPath: "/api/runs"},
	{Tag: TagCohort, Name: "Cohort", Schema: "tmp/bundled_schemas/cohort.json", RootPath: "/api/cohorts", Collection: true},
	{Tag: TagDataset, Name: "Dataset", Schema: "tmp/bundled_schemas/dataset.json", RootPath: "/api/datasets", Collection: true},
}

// Lookup returns the entry type for a tag.
func Lookup(tag string) (EntryType, bool) {
	for _, et := range EntryTypes {
		if et.Tag == tag {
			return et, true
		}
	}
	return EntryType{}, false
}

// SchemaReference returns the schema reference list echoed for an entry
// type.
func SchemaReference(et EntryType) []model.SchemaReference {
	return []model.SchemaReference{{EntityType: et.Tag, Schema: et.Schema}}
}

func entryTypeDefinitions() map[string]any {
	defs := make(map[string]any, len(EntryTypes))
	for _, et := range EntryTypes {
		defs[et.Tag] = map[string]any{
			"id":                  et.Tag,
			"name":                et.Name,
			"partOfSpecification": "Beacon v2.0",
			"description":         et.Name + " entry type for Beacon v2",
			"defaultSchema": map[string]any{
				"id":                          et.Tag,
				"name":                        et.Name,
				"referenceToSchemaDefinition": et.Schema,
				"schemaVersion":               "2.0.0",
			},
			"ontologyTermForThisType": map[string]any{
				"id":    "CUSTOM:" + et.Tag,
				"label": et.Name,
			},
		}
	}
	return defs
}

// Configuration builds the /configuration payload. The environment string
// is mapped onto the Beacon maturity vocabulary, defaulting to DEV.
func Configuration(environment string) map[string]any {
	status := "DEV"
	switch strings.ToLower(environment) {
	case "prod", "production":
		status = "PROD"
	case "test", "staging":
		status = "TEST"
	}
	return map[string]any{
		"$schema": "https://raw.githubusercontent.com/ga4gh-beacon/beacon-v2/main/framework/json/configuration/beaconConfigurationSchema.json",
		"maturityAttributes": map[string]any{
			"productionStatus": status,
		},
		"securityAttributes": map[string]any{
			"defaultGranularity": "record",
			"securityLevels":     []string{"PUBLIC"},
		},
		"entryTypes": entryTypeDefinitions(),
	}
}

// EntryTypesResponse builds the /entry_types payload.
func EntryTypesResponse() map[string]any {
	return map[string]any{"entryTypes": entryTypeDefinitions()}
}

// MapResponse builds the /map payload with absolute endpoint URLs.
func MapResponse(baseURL string) map[string]any {
	baseURL = strings.TrimRight(baseURL, "/")
	sets := make(map[string]any, len(EntryTypes))
	for _, et := range EntryTypes {
		entry := map[string]any{
			"entryType":                  et.Tag,
			"rootUrl":                    baseURL + et.RootPath,
			"openAPIEndpointsDefinition": baseURL + "/openapi.json",
		}
		if et.SinglePath != "" {
			entry["singleEntryUrl"] = baseURL + et.SinglePath
		}
		sets[et.Tag] = entry
	}
	return map[string]any{
		"$schema":      "https://raw.githubusercontent.com/ga4gh-beacon/beacon-v2/main/framework/json/configuration/beaconMapSchema.json",
		"endpointSets": sets,
	}
}
