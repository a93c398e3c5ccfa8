package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tapevault/tapevault-server/internal/domain"
)

func (s *Server) registerNormalizeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "normalizeFolder",
		Method:      http.MethodPost,
		Path:        "/api/v1/normalize",
		Summary:     "Preview folder normalization",
		Description: "Reads one show folder, resolves each track title through the alias index, and returns the album and track tags a write pass would apply. Nothing is modified",
		Tags:        []string{"Normalize"},
	}, s.handleNormalizeFolder)
}

// === DTOs ===

// NormalizeFolderInput contains the request body for a normalization preview.
type NormalizeFolderInput struct {
	Body struct {
		FolderPath string `json:"folderPath" validate:"required,min=1,max=1000" doc:"Absolute path of the show folder to preview"`
	}
}

// NormalizedTrackResponse is one track's proposed normalization.
type NormalizedTrackResponse struct {
	FileName      string `json:"fileName" doc:"Audio file name"`
	RawTitle      string `json:"rawTitle" doc:"Title as read from the tag or file name"`
	Matched       bool   `json:"matched" doc:"Whether the title resolved to an official song"`
	ProposedTitle string `json:"proposedTitle" doc:"Tag title a write pass would apply"`
}

// NormalizeFolderResponse contains the full preview for one folder.
type NormalizeFolderResponse struct {
	FolderPath    string                    `json:"folderPath" doc:"Folder that was previewed"`
	Descriptor    domain.AlbumDescriptor    `json:"descriptor" doc:"Inferred album descriptor"`
	ProposedAlbum string                    `json:"proposedAlbum" doc:"Album tag a write pass would apply"`
	Tracks        []NormalizedTrackResponse `json:"tracks" doc:"Per-track outcomes in play order"`
	Unmatched     int                       `json:"unmatched" doc:"Number of titles that did not resolve"`
}

// NormalizeFolderOutput wraps the preview for Huma.
type NormalizeFolderOutput struct {
	Body NormalizeFolderResponse
}

func (s *Server) handleNormalizeFolder(ctx context.Context, input *NormalizeFolderInput) (*NormalizeFolderOutput, error) {
	preview, err := s.services.Normalizer.NormalizeFolder(ctx, input.Body.FolderPath)
	if err != nil {
		s.logger.Error("Normalization preview failed", "error", err, "folder", input.Body.FolderPath)
		return nil, err
	}

	tracks := make([]NormalizedTrackResponse, 0, len(preview.Tracks))
	for _, t := range preview.Tracks {
		tracks = append(tracks, NormalizedTrackResponse{
			FileName:      t.Track.FileName,
			RawTitle:      t.Track.RawTitle,
			Matched:       t.Matched,
			ProposedTitle: t.ProposedTitle,
		})
	}

	return &NormalizeFolderOutput{Body: NormalizeFolderResponse{
		FolderPath:    preview.FolderPath,
		Descriptor:    preview.Descriptor,
		ProposedAlbum: preview.ProposedAlbum,
		Tracks:        tracks,
		Unmatched:     preview.Unmatched,
	}}, nil
}
