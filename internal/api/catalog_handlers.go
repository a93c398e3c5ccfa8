package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/domain"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "List catalog",
		Description: "Returns every indexed album in canonical order: live shows and official releases first, studio albums last",
		Tags:        []string{"Catalog"},
	}, s.handleListCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search catalog",
		Description: "Multi-criterion search over the catalog. Free text matches descriptor fields; song criteria are resolved through the alias index before comparison",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "rescanCatalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/rescan",
		Summary:     "Rescan library",
		Description: "Walks the library roots, rebuilds the catalog, and persists it. Rate limited because a scan reads every folder",
		Tags:        []string{"Catalog"},
	}, s.handleRescanCatalog)
}

// === DTOs ===

// ListCatalogOutput wraps the catalog listing for Huma.
type ListCatalogOutput struct {
	Body CatalogResponse
}

// CatalogResponse contains catalog entries in API responses.
type CatalogResponse struct {
	Total   int                   `json:"total" doc:"Number of entries"`
	Entries []domain.CatalogEntry `json:"entries" doc:"Catalog entries in canonical order"`
}

// SearchCatalogInput contains parameters for searching the catalog.
type SearchCatalogInput struct {
	Query    string `query:"q" validate:"omitempty,max=200" doc:"Free-text filter over album fields (date, venue, city, release name, year)"`
	Require  string `query:"require" validate:"omitempty,max=500" doc:"Comma-separated songs that must all appear in the track list"`
	Exclude  string `query:"exclude" validate:"omitempty,max=500" doc:"Comma-separated songs that must not appear in the track list"`
	Sequence string `query:"sequence" validate:"omitempty,max=500" doc:"Comma-separated songs that must appear consecutively in order"`
}

// RescanOutput wraps the rescan result for Huma.
type RescanOutput struct {
	Body RescanResponse
}

// RescanResponse reports the outcome of a library rescan.
type RescanResponse struct {
	Total int `json:"total" doc:"Number of entries after the rescan"`
}

func (s *Server) handleListCatalog(ctx context.Context, _ *struct{}) (*ListCatalogOutput, error) {
	entries, err := s.services.Catalog.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list catalog", "error", err)
		return nil, err
	}
	return &ListCatalogOutput{Body: CatalogResponse{Total: len(entries), Entries: entries}}, nil
}

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*ListCatalogOutput, error) {
	q := catalog.Query{
		Text:     input.Query,
		Required: splitCriteria(input.Require),
		Excluded: splitCriteria(input.Exclude),
		Sequence: splitCriteria(input.Sequence),
	}

	entries, err := s.services.Catalog.Search(ctx, q)
	if err != nil {
		s.logger.Error("Search failed", "error", err)
		return nil, err
	}
	return &ListCatalogOutput{Body: CatalogResponse{Total: len(entries), Entries: entries}}, nil
}

func (s *Server) handleRescanCatalog(ctx context.Context, _ *struct{}) (*RescanOutput, error) {
	if !s.rescanLimiter.Allow("rescan") {
		return nil, huma.Error429TooManyRequests("a rescan was triggered recently, try again later")
	}

	entries, err := s.services.Catalog.Rescan(ctx)
	if err != nil {
		s.logger.Error("Rescan failed", "error", err)
		return nil, err
	}
	return &RescanOutput{Body: RescanResponse{Total: len(entries)}}, nil
}

// splitCriteria splits a comma-separated query parameter into trimmed,
// non-empty song names.
func splitCriteria(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
