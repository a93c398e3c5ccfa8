package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSongRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSongs",
		Method:      http.MethodGet,
		Path:        "/api/v1/songs",
		Summary:     "List songs",
		Description: "Returns every official song title known to the normalizer, sorted",
		Tags:        []string{"Songs"},
	}, s.handleListSongs)

	huma.Register(s.api, huma.Operation{
		OperationID: "addSong",
		Method:      http.MethodPost,
		Path:        "/api/v1/songs",
		Summary:     "Add song",
		Description: "Adds a new official song title with optional aliases to the song database",
		Tags:        []string{"Songs"},
	}, s.handleAddSong)

	huma.Register(s.api, huma.Operation{
		OperationID: "addAlias",
		Method:      http.MethodPost,
		Path:        "/api/v1/songs/aliases",
		Summary:     "Add alias",
		Description: "Attaches an alias to an existing song so future scans normalize it",
		Tags:        []string{"Songs"},
	}, s.handleAddAlias)
}

// === DTOs ===

// SongListOutput wraps the song title listing for Huma.
type SongListOutput struct {
	Body SongListResponse
}

// SongListResponse contains song titles in API responses.
type SongListResponse struct {
	Total  int      `json:"total" doc:"Number of titles"`
	Titles []string `json:"titles" doc:"Official song titles, sorted"`
}

// AddSongInput contains the request body for adding a song.
type AddSongInput struct {
	Body struct {
		Artist  string   `json:"artist" validate:"required,min=1,max=200" doc:"Artist the song belongs to"`
		Title   string   `json:"title" validate:"required,min=1,max=200" doc:"Official song title"`
		Aliases []string `json:"aliases,omitempty" validate:"omitempty,dive,min=1,max=200" doc:"Alternate spellings and abbreviations"`
	}
}

// AddAliasInput contains the request body for attaching an alias.
type AddAliasInput struct {
	Body struct {
		Title string `json:"title" validate:"required,min=1,max=200" doc:"Official title of an existing song"`
		Alias string `json:"alias" validate:"required,min=1,max=200" doc:"Alias to attach"`
	}
}

// SongMutationOutput wraps mutation results for Huma.
type SongMutationOutput struct {
	Body SongMutationResponse
}

// SongMutationResponse reports the outcome of a song database change.
type SongMutationResponse struct {
	Title string `json:"title" doc:"Official title affected"`
}

func (s *Server) handleListSongs(_ context.Context, _ *struct{}) (*SongListOutput, error) {
	titles := s.services.Songs.Titles()
	return &SongListOutput{Body: SongListResponse{Total: len(titles), Titles: titles}}, nil
}

func (s *Server) handleAddSong(_ context.Context, input *AddSongInput) (*SongMutationOutput, error) {
	if err := s.services.Songs.Add(input.Body.Artist, input.Body.Title, input.Body.Aliases); err != nil {
		s.logger.Error("Failed to add song", "error", err, "title", input.Body.Title)
		return nil, err
	}
	return &SongMutationOutput{Body: SongMutationResponse{Title: input.Body.Title}}, nil
}

func (s *Server) handleAddAlias(_ context.Context, input *AddAliasInput) (*SongMutationOutput, error) {
	if err := s.services.Songs.AddAlias(input.Body.Title, input.Body.Alias); err != nil {
		s.logger.Error("Failed to add alias", "error", err, "title", input.Body.Title, "alias", input.Body.Alias)
		return nil, err
	}
	return &SongMutationOutput{Body: SongMutationResponse{Title: input.Body.Title}}, nil
}
