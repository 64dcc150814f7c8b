package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/seogenix/backend/internal/domain/markup"
	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

const schemaSystem = "You are a Schema.org structured data expert. You produce valid JSON-LD markup for web pages. Respond with the JSON-LD object only, no prose and no markdown fences."

const schemaPromptTemplate = `Generate %s JSON-LD schema markup for this page.

URL: %s

Page content (may be empty if the page could not be fetched):
"""
%s
"""

Respond with a single JSON-LD object containing "@context": "https://schema.org" and "@type": "%s". Fill properties from the page content where possible; leave placeholders where it is not.`

// SchemaService generates JSON-LD markup and persists each artifact.
type SchemaService struct {
	pipeline
	schemas markup.Repository
}

func NewSchemaService(fetcher fetch.PageFetcher, o oracle.Oracle, schemas markup.Repository, log *logger.Logger) *SchemaService {
	return &SchemaService{
		pipeline: pipeline{fetcher: fetcher, oracle: o, logger: log},
		schemas:  schemas,
	}
}

// Generate builds JSON-LD of the requested type for a URL. Output that is
// not valid JSON is replaced by a skeleton of the same schema type.
func (s *SchemaService) Generate(ctx context.Context, userID int64, siteID, url, schemaType string) (*markup.Schema, error) {
	if schemaType == "" {
		schemaType = markup.TypeOrganization
	}
	content := s.fetchPage(ctx, url, budgetSchema)

	raw, err := s.complete(ctx, "schema", oracle.Request{
		System:      schemaSystem,
		Prompt:      fmt.Sprintf(schemaPromptTemplate, schemaType, url, content, schemaType),
		MaxTokens:   1000,
		Temperature: tempSchema,
	})
	if err != nil {
		return nil, errors.OracleError(err)
	}

	jsonld := oracle.StripFences(raw)
	if !json.Valid([]byte(jsonld)) {
		metrics.RecordOracleRequest("schema", metrics.OutcomeFallback, 0)
		s.logger.WithFields(map[string]interface{}{
			"schema_type": schemaType,
			"url":         url,
		}).Warn("Oracle output was not valid JSON-LD, substituting skeleton")
		jsonld = FallbackJSONLD(schemaType, url)
	} else {
		metrics.RecordOracleRequest("schema", metrics.OutcomeOK, 0)
	}

	rec := &markup.Schema{
		SiteID:     siteID,
		UserID:     userID,
		URL:        url,
		SchemaType: schemaType,
		JSONLD:     jsonld,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.schemas.Create(ctx, rec); err != nil {
		return nil, errors.DatabaseError("failed to save schema", err)
	}
	return rec, nil
}

// FallbackJSONLD returns a minimal valid JSON-LD skeleton for a schema type.
// Every shape carries @context and @type so the artifact validates even when
// generation degrades.
func FallbackJSONLD(schemaType, url string) string {
	base := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    schemaType,
		"url":      url,
	}
	switch schemaType {
	case markup.TypeOrganization:
		base["name"] = "Your Organization"
		base["logo"] = url + "/logo.png"
	case markup.TypeLocalBusiness:
		base["name"] = "Your Business"
		base["address"] = map[string]interface{}{
			"@type":           "PostalAddress",
			"streetAddress":   "",
			"addressLocality": "",
		}
	case markup.TypeArticle:
		base["headline"] = "Article headline"
		base["author"] = map[string]interface{}{"@type": "Person", "name": "Author"}
		base["datePublished"] = time.Now().UTC().Format("2006-01-02")
	case markup.TypeProduct:
		base["name"] = "Product name"
		base["offers"] = map[string]interface{}{"@type": "Offer", "priceCurrency": "USD", "price": "0.00"}
	case markup.TypeFAQPage:
		base["mainEntity"] = []interface{}{
			map[string]interface{}{
				"@type": "Question",
				"name":  "What does this page cover?",
				"acceptedAnswer": map[string]interface{}{
					"@type": "Answer",
					"text":  "A short answer.",
				},
			},
		}
	case markup.TypeWebSite:
		base["name"] = "Your Website"
	}
	out, _ := json.MarshalIndent(base, "", "  ")
	return string(out)
}
