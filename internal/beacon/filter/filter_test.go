package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
)

func mustParse(t *testing.T, raw string) []model.FilteringTerm {
	t.Helper()
	terms, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	return terms
}

func TestParse_JSONSingleObject(t *testing.T) {
	terms := mustParse(t, `{"id":"HP:0001250"}`)
	if len(terms) != 1 {
		t.Fatalf("len=%d want 1", len(terms))
	}
	if terms[0].ID != "HP:0001250" || terms[0].Operator != "" || terms[0].Value != nil {
		t.Fatalf("unexpected term: %+v", terms[0])
	}
}

func TestParse_JSONArray(t *testing.T) {
	terms := mustParse(t, `[{"id":"HP:0001250"},{"id":"NCIT:C6975"}]`)
	if len(terms) != 2 {
		t.Fatalf("len=%d want 2", len(terms))
	}
	if terms[0].ID != "HP:0001250" || terms[1].ID != "NCIT:C6975" {
		t.Fatalf("unexpected terms: %+v", terms)
	}
}

func TestParse_JSONAlphanumericValueNotCoerced(t *testing.T) {
	terms := mustParse(t, `[{"id":"PATO:0000011","operator":">","value":"P70Y"}]`)
	if terms[0].Operator != ">" {
		t.Fatalf("operator=%q want >", terms[0].Operator)
	}
	// The JSON path never numeric-coerces: the string stays a string.
	if v, ok := terms[0].Value.(string); !ok || v != "P70Y" {
		t.Fatalf("value=%v (%T) want string P70Y", terms[0].Value, terms[0].Value)
	}
}

func TestParse_JSONOptionalFields(t *testing.T) {
	terms := mustParse(t, `[{"id":"HP:0001250","includeDescendantTerms":false,"similarity":"high"}]`)
	if terms[0].IncludeDescendantTerms == nil || *terms[0].IncludeDescendantTerms {
		t.Fatalf("includeDescendantTerms=%v want false", terms[0].IncludeDescendantTerms)
	}
	if terms[0].Similarity != "high" {
		t.Fatalf("similarity=%q want high", terms[0].Similarity)
	}
}

func TestParse_JSONOrderPreserved(t *testing.T) {
	terms := mustParse(t, `[{"id":"B:2"},{"id":"A:1"},{"id":"C:3"}]`)
	got := IDs(terms)
	want := []string{"B:2", "A:1", "C:3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}
}

func TestParse_MalformedJSON_SyntaxError(t *testing.T) {
	_, err := Parse(`[{"id":"HP:0001250"`)
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("err=%v (%T) want SyntaxError", err, err)
	}
}

func TestParse_JSONArrayOfStrings_FormatError(t *testing.T) {
	_, err := Parse(`["a","b"]`)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err=%v (%T) want FormatError", err, err)
	}
}

func TestParse_JSONObjectMissingID_FormatError(t *testing.T) {
	_, err := Parse(`[{"operator":"=","value":"x"}]`)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err=%v (%T) want FormatError", err, err)
	}
}

func TestParse_CompactBareIDs(t *testing.T) {
	terms := mustParse(t, "HP:0001250,NCIT:C6975,HP:0100526")
	if len(terms) != 3 {
		t.Fatalf("len=%d want 3", len(terms))
	}
	for i, want := range []string{"HP:0001250", "NCIT:C6975", "HP:0100526"} {
		if terms[i].ID != want || terms[i].Operator != "" {
			t.Fatalf("term[%d]=%+v want bare %s", i, terms[i], want)
		}
	}
}

func TestParse_CompactUnderscoreCanonicalized(t *testing.T) {
	terms := mustParse(t, "PATO_0000011")
	if terms[0].ID != "PATO:0000011" {
		t.Fatalf("id=%q want PATO:0000011", terms[0].ID)
	}
}

func TestParse_CompactOperatorForms(t *testing.T) {
	cases := []struct {
		in    string
		id    string
		op    string
		value any
	}{
		{"PATO_0000011:>P70Y", "PATO:0000011", ">", "P70Y"},
		{"variant_type:=SNP", "variant:type", "=", "SNP"},
		{"age:>=18", "age", ">=", int64(18)},
		{"age:<65", "age", "<", int64(65)},
		{"age:<=64", "age", "<=", int64(64)},
		{"score:>3.5", "score", ">", 3.5},
		{"status:!active", "status", "!", "active"},
		{"HP_0032443:%cancer%", "HP:0032443:%cancer%", "", nil},
	}
	for _, c := range cases {
		terms := mustParse(t, c.in)
		if len(terms) != 1 {
			t.Fatalf("%q: len=%d want 1", c.in, len(terms))
		}
		got := terms[0]
		if got.ID != c.id || got.Operator != c.op || got.Value != c.value {
			t.Fatalf("%q: got %+v want id=%q op=%q value=%v", c.in, got, c.id, c.op, c.value)
		}
	}
}

func TestParse_CompactValueCoercionTypes(t *testing.T) {
	terms := mustParse(t, "age:>=18")
	if _, ok := terms[0].Value.(int64); !ok {
		t.Fatalf("value %v (%T) want int64", terms[0].Value, terms[0].Value)
	}
	terms = mustParse(t, "score:>3.5")
	if _, ok := terms[0].Value.(float64); !ok {
		t.Fatalf("value %v (%T) want float64", terms[0].Value, terms[0].Value)
	}
	// Unparseable "numbers" silently stay strings.
	terms = mustParse(t, "version:=1.2.3")
	if v, ok := terms[0].Value.(string); !ok || v != "1.2.3" {
		t.Fatalf("value %v (%T) want string 1.2.3", terms[0].Value, terms[0].Value)
	}
	// Wildcard markers are never coerced even with a dot.
	terms = mustParse(t, "name:=%2.5%")
	if v, ok := terms[0].Value.(string); !ok || v != "%2.5%" {
		t.Fatalf("value %v (%T) want string %%2.5%%", terms[0].Value, terms[0].Value)
	}
}

func TestParse_CompactMixed(t *testing.T) {
	terms := mustParse(t, "NCIT:C6975,PATO_0000011:>P70Y,HP:0001250")
	if len(terms) != 3 {
		t.Fatalf("len=%d want 3", len(terms))
	}
	if terms[0].ID != "NCIT:C6975" || terms[0].Operator != "" {
		t.Fatalf("term[0]=%+v", terms[0])
	}
	if terms[1].ID != "PATO:0000011" || terms[1].Operator != ">" || terms[1].Value != "P70Y" {
		t.Fatalf("term[1]=%+v", terms[1])
	}
	if terms[2].ID != "HP:0001250" {
		t.Fatalf("term[2]=%+v", terms[2])
	}
}

func TestParse_CompactWhitespaceAndEmptySegments(t *testing.T) {
	terms := mustParse(t, "HP:0001250 , NCIT:C6975 , HP:0100526")
	if len(terms) != 3 {
		t.Fatalf("len=%d want 3", len(terms))
	}
	terms = mustParse(t, "HP:0001250,,NCIT:C6975")
	if len(terms) != 2 {
		t.Fatalf("len=%d want 2", len(terms))
	}
	terms = mustParse(t, ",HP:0001250,")
	if len(terms) != 1 {
		t.Fatalf("len=%d want 1", len(terms))
	}
}

func TestParse_AbsentInputsCollapseToNil(t *testing.T) {
	for _, raw := range []string{"", "   ", ",,,", " , , "} {
		terms, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if terms != nil {
			t.Fatalf("Parse(%q)=%v want nil", raw, terms)
		}
	}
}

func TestParse_OperatorWithEmptySideIsBareID(t *testing.T) {
	// "age:>=" has no value half; the segment falls back to a bare id.
	terms := mustParse(t, "age:>=")
	if terms[0].Operator != "" || terms[0].ID != "age:>=" {
		t.Fatalf("term=%+v want bare id", terms[0])
	}
}

func TestParse_IdempotentOverIDRendering(t *testing.T) {
	// Re-parsing the id-only rendering is a fixed point for bare terms,
	// and a deliberate lossy projection for operator terms.
	in := "PATO_0000011,HP:0001250,age:>=18"
	first := mustParse(t, in)
	rendered := ""
	for i, id := range IDs(first) {
		if i > 0 {
			rendered += ","
		}
		rendered += id
	}
	second := mustParse(t, rendered)
	if len(second) != len(first) {
		t.Fatalf("len=%d want %d", len(second), len(first))
	}
	for i := range second {
		if second[i].ID != first[i].ID {
			t.Fatalf("id[%d]=%q want %q", i, second[i].ID, first[i].ID)
		}
		if second[i].Operator != "" || second[i].Value != nil {
			t.Fatalf("rendering must drop operator/value, got %+v", second[i])
		}
	}
}

func TestIDs_EmptyInput(t *testing.T) {
	if got := IDs(nil); got == nil || len(got) != 0 {
		t.Fatalf("IDs(nil)=%v want empty non-nil slice", got)
	}
}

func TestBuildRequest_Defaults(t *testing.T) {
	body, err := BuildRequest(5, 20, model.GranularityRecord, "HP:0001250")
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if body.Meta.RequestedGranularity != model.GranularityRecord {
		t.Fatalf("granularity=%q", body.Meta.RequestedGranularity)
	}
	if body.Meta.Pagination.Skip != 5 || body.Meta.Pagination.Limit != 20 {
		t.Fatalf("pagination=%+v", body.Meta.Pagination)
	}
	if body.Meta.IncludeResultsetResponses != "HIT" {
		t.Fatalf("includeResultsetResponses=%q want HIT", body.Meta.IncludeResultsetResponses)
	}
	if len(body.Filters) != 1 || body.Filters[0].ID != "HP:0001250" {
		t.Fatalf("filters=%+v", body.Filters)
	}
}

func TestBuildRequest_NoFilters(t *testing.T) {
	body, err := BuildRequest(0, 10, model.GranularityBoolean, "")
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if body.Filters != nil {
		t.Fatalf("filters=%v want nil", body.Filters)
	}
}

func TestBuildRequest_ParseErrorSurfaces(t *testing.T) {
	_, err := BuildRequest(0, 10, model.GranularityRecord, `[{"id":`)
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("err=%v want SyntaxError", err)
	}
}
