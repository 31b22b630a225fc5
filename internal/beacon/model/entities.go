package model

// Entity payloads returned by data services. These mirror the Beacon v2
// default schemas loosely; real deployments substitute their own record
// shapes, which the resultset wrapper carries opaquely.

type Individual struct {
	ID                        string           `json:"id"`
	Sex                       string           `json:"sex,omitempty"`
	Ethnicity                 map[string]any   `json:"ethnicity,omitempty"`
	GeographicOrigin          map[string]any   `json:"geographicOrigin,omitempty"`
	Diseases                  []map[string]any `json:"diseases,omitempty"`
	PhenotypicFeatures        []map[string]any `json:"phenotypicFeatures,omitempty"`
	InterventionsOrProcedures []map[string]any `json:"interventionsOrProcedures,omitempty"`
	Measures                  []map[string]any `json:"measures,omitempty"`
	Info                      map[string]any   `json:"info,omitempty"`
}

type Biosample struct {
	ID                 string           `json:"id"`
	IndividualID       string           `json:"individualId,omitempty"`
	BiosampleStatus    map[string]any   `json:"biosampleStatus,omitempty"`
	SampleOriginType   map[string]any   `json:"sampleOriginType,omitempty"`
	SampleOriginDetail map[string]any   `json:"sampleOriginDetail,omitempty"`
	CollectionDate     string           `json:"collectionDate,omitempty"`
	CollectionMoment   string           `json:"collectionMoment,omitempty"`
	ObtainedFromID     string           `json:"obtainedFromId,omitempty"`
	PhenotypicFeatures []map[string]any `json:"phenotypicFeatures,omitempty"`
	Measurements       []map[string]any `json:"measurements,omitempty"`
	PathologicalStage  map[string]any   `json:"pathologicalStage,omitempty"`
	TumorProgression   map[string]any   `json:"tumorProgression,omitempty"`
	TumorGrade         map[string]any   `json:"tumorGrade,omitempty"`
	DiagnosticMarkers  []map[string]any `json:"diagnosticMarkers,omitempty"`
	Procedure          map[string]any   `json:"procedure,omitempty"`
	Info               map[string]any   `json:"info,omitempty"`
}

type GenomicVariation struct {
	ID                string         `json:"id"`
	VariationType     string         `json:"variationType,omitempty"`
	ReferenceGenome   string         `json:"referenceGenome,omitempty"`
	Chromosome        string         `json:"chromosome,omitempty"`
	Start             *int           `json:"start,omitempty"`
	End               *int           `json:"end,omitempty"`
	ReferenceBases    string         `json:"referenceBases,omitempty"`
	AlternateBases    string         `json:"alternateBases,omitempty"`
	VariantInternalID string         `json:"variantInternalId,omitempty"`
	Identifiers       map[string]any `json:"identifiers,omitempty"`
	Info              map[string]any `json:"info,omitempty"`
}

type Analysis struct {
	ID            string         `json:"id"`
	AnalysisType  map[string]any `json:"analysisType,omitempty"`
	PipelineName  string         `json:"pipelineName,omitempty"`
	PipelineRef   string         `json:"pipelineRef,omitempty"`
	AnalysisDate  string         `json:"analysisDate,omitempty"`
	BiosampleID   string         `json:"biosampleId,omitempty"`
	IndividualID  string         `json:"individualId,omitempty"`
	Aligner       string         `json:"aligner,omitempty"`
	VariantCaller string         `json:"variantCaller,omitempty"`
	Info          map[string]any `json:"info,omitempty"`
}

type Cohort struct {
	ID                string           `json:"id"`
	Name              string           `json:"name,omitempty"`
	CohortType        string           `json:"cohortType,omitempty"`
	CohortSize        *int             `json:"cohortSize,omitempty"`
	CohortDataTypes   []map[string]any `json:"cohortDataTypes,omitempty"`
	CohortDesign      map[string]any   `json:"cohortDesign,omitempty"`
	InclusionCriteria map[string]any   `json:"inclusionCriteria,omitempty"`
	ExclusionCriteria map[string]any   `json:"exclusionCriteria,omitempty"`
	Info              map[string]any   `json:"info,omitempty"`
}

type Dataset struct {
	ID                string         `json:"id"`
	Name              string         `json:"name,omitempty"`
	Description       string         `json:"description,omitempty"`
	AssemblyID        string         `json:"assemblyId,omitempty"`
	CreateDateTime    string         `json:"createDateTime,omitempty"`
	UpdateDateTime    string         `json:"updateDateTime,omitempty"`
	Version           string         `json:"version,omitempty"`
	ExternalURL       string         `json:"externalUrl,omitempty"`
	DataUseConditions map[string]any `json:"dataUseConditions,omitempty"`
	Info              map[string]any `json:"info,omitempty"`
}

type Run struct {
	ID               string         `json:"id"`
	BiosampleID      string         `json:"biosampleId,omitempty"`
	IndividualID     string         `json:"individualId,omitempty"`
	RunDate          string         `json:"runDate,omitempty"`
	LibrarySource    string         `json:"librarySource,omitempty"`
	LibrarySelection string         `json:"librarySelection,omitempty"`
	LibraryStrategy  string         `json:"libraryStrategy,omitempty"`
	LibraryLayout    string         `json:"libraryLayout,omitempty"`
	Platform         string         `json:"platform,omitempty"`
	PlatformModel    string         `json:"platformModel,omitempty"`
	Info             map[string]any `json:"info,omitempty"`
}
