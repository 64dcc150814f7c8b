package analysis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/seogenix/backend/internal/domain/markup"
	"github.com/seogenix/backend/internal/testutil"
)

func TestSchemaGeneratePassesThroughValidJSON(t *testing.T) {
	jsonld := `{"@context": "https://schema.org", "@type": "Article", "headline": "Hello"}`
	o := &testutil.MockOracle{Responses: []string{"```json\n" + jsonld + "\n```"}}
	schemas := testutil.NewMockMarkupRepository()
	svc := NewSchemaService(&testutil.StubFetcher{Content: "<h1>Hello</h1>"}, o, schemas, testLogger())

	rec, err := svc.Generate(context.Background(), 1, "site-1", "https://example.com/post", markup.TypeArticle)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.JSONLD != jsonld {
		t.Errorf("JSONLD = %q, want fenced content stripped to %q", rec.JSONLD, jsonld)
	}
	if len(schemas.Schemas) != 1 {
		t.Errorf("stored schemas = %d, want 1", len(schemas.Schemas))
	}
}

func TestSchemaGenerateDefaultsToOrganization(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{`{"@context": "https://schema.org", "@type": "Organization"}`}}
	svc := NewSchemaService(&testutil.StubFetcher{}, o, testutil.NewMockMarkupRepository(), testLogger())

	rec, err := svc.Generate(context.Background(), 1, "", "https://example.com", "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if rec.SchemaType != markup.TypeOrganization {
		t.Errorf("SchemaType = %q, want %q", rec.SchemaType, markup.TypeOrganization)
	}
}

func TestSchemaGenerateSubstitutesSkeletonForInvalidOutput(t *testing.T) {
	o := &testutil.MockOracle{Responses: []string{"Here is your schema: <script>...</script>"}}
	svc := NewSchemaService(&testutil.StubFetcher{}, o, testutil.NewMockMarkupRepository(), testLogger())

	rec, err := svc.Generate(context.Background(), 1, "site-1", "https://example.com", markup.TypeFAQPage)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(rec.JSONLD), &doc); err != nil {
		t.Fatalf("fallback JSONLD does not parse: %v", err)
	}
	if doc["@context"] != "https://schema.org" {
		t.Errorf("@context = %v, want https://schema.org", doc["@context"])
	}
	if doc["@type"] != markup.TypeFAQPage {
		t.Errorf("@type = %v, want %s", doc["@type"], markup.TypeFAQPage)
	}
	if _, ok := doc["mainEntity"]; !ok {
		t.Error("FAQPage skeleton missing mainEntity")
	}
}

func TestFallbackJSONLDValidForAllKnownTypes(t *testing.T) {
	types := []string{
		markup.TypeOrganization,
		markup.TypeLocalBusiness,
		markup.TypeArticle,
		markup.TypeProduct,
		markup.TypeFAQPage,
		markup.TypeWebSite,
		"Event", // unknown types still get a minimal shape
	}

	for _, st := range types {
		t.Run(st, func(t *testing.T) {
			var doc map[string]interface{}
			if err := json.Unmarshal([]byte(FallbackJSONLD(st, "https://example.com")), &doc); err != nil {
				t.Fatalf("FallbackJSONLD(%q) does not parse: %v", st, err)
			}
			if doc["@type"] != st {
				t.Errorf("@type = %v, want %s", doc["@type"], st)
			}
		})
	}
}
