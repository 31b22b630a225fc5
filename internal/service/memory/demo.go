package memory

import "github.com/openbiodata/beacon-api/internal/beacon/model"

// Demo fixtures loaded when DEMO_DATA is enabled. Small on purpose; they
// exist to make a fresh checkout answer real queries, not to be a dataset.

func intp(n int) *int { return &n }

func DemoIndividuals() []any {
	return []any{
		model.Individual{
			ID:  "ind-0001",
			Sex: "female",
			Diseases: []map[string]any{
				{"diseaseCode": map[string]any{"id": "MONDO:0005015", "label": "diabetes mellitus"}},
			},
		},
		model.Individual{
			ID:  "ind-0002",
			Sex: "male",
			PhenotypicFeatures: []map[string]any{
				{"featureType": map[string]any{"id": "HP:0000822", "label": "Hypertension"}},
			},
		},
		model.Individual{ID: "ind-0003", Sex: "female"},
	}
}

func DemoBiosamples() []any {
	return []any{
		model.Biosample{
			ID:           "bs-0001",
			IndividualID: "ind-0001",
			BiosampleStatus: map[string]any{
				"id": "EFO:0009654", "label": "reference sample",
			},
			CollectionDate: "2021-04-23",
		},
		model.Biosample{
			ID:           "bs-0002",
			IndividualID: "ind-0002",
			SampleOriginType: map[string]any{
				"id": "OBI:0001479", "label": "specimen from organism",
			},
		},
	}
}

func DemoGenomicVariations() []any {
	return []any{
		model.GenomicVariation{
			ID:              "var-0001",
			VariationType:   "SNP",
			ReferenceGenome: "GRCh38",
			Chromosome:      "17",
			Start:           intp(43044295),
			End:             intp(43044296),
			ReferenceBases:  "G",
			AlternateBases:  "A",
		},
		model.GenomicVariation{
			ID:              "var-0002",
			VariationType:   "DEL",
			ReferenceGenome: "GRCh38",
			Chromosome:      "7",
			Start:           intp(117559590),
			End:             intp(117559593),
		},
	}
}

func DemoCohorts() []any {
	return []any{
		model.Cohort{
			ID:         "cohort-0001",
			Name:       "Demo population cohort",
			CohortType: "study-defined",
			CohortSize: intp(3),
		},
	}
}
