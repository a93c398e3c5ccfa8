package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tapevault/tapevault-server/internal/domain"
	"github.com/tapevault/tapevault-server/internal/service"
)

func (s *Server) registerImportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "planImport",
		Method:      http.MethodPost,
		Path:        "/api/v1/import/plan",
		Summary:     "Plan an import",
		Description: "Computes where a source folder's tracks would land in the library, grouped by performance date. Nothing is copied",
		Tags:        []string{"Import"},
	}, s.handlePlanImport)

	huma.Register(s.api, huma.Operation{
		OperationID: "runImport",
		Method:      http.MethodPost,
		Path:        "/api/v1/import",
		Summary:     "Run an import",
		Description: "Plans and copies a source folder into the library. Shows already present are skipped, never overwritten",
		Tags:        []string{"Import"},
	}, s.handleRunImport)
}

// === DTOs ===

// ImportInput contains the request body for planning or running an import.
type ImportInput struct {
	Body struct {
		SourceFolder string `json:"sourceFolder" validate:"required,min=1,max=1000" doc:"Absolute path of the folder to import"`
	}
}

// PlannedFileResponse maps one source track to its target path.
type PlannedFileResponse struct {
	SourcePath string `json:"sourcePath" doc:"Track in the source folder"`
	TargetPath string `json:"targetPath" doc:"Where the track would be copied"`
}

// PlannedShowResponse is the plan for one performance date.
type PlannedShowResponse struct {
	Descriptor domain.AlbumDescriptor `json:"descriptor" doc:"Inferred album descriptor"`
	FolderName string                 `json:"folderName" doc:"Canonical target folder name"`
	TargetDir  string                 `json:"targetDir" doc:"Target directory in the library"`
	Exists     bool                   `json:"exists" doc:"Whether a folder for this date already exists"`
	Files      []PlannedFileResponse  `json:"files" doc:"Per-file copy plan in track order"`
}

// ImportPlanResponse contains the full plan for one source folder.
type ImportPlanResponse struct {
	SourceFolder string                `json:"sourceFolder" doc:"Folder the plan was computed for"`
	Shows        []PlannedShowResponse `json:"shows" doc:"One planned show per performance date"`
}

// ImportPlanOutput wraps the plan for Huma.
type ImportPlanOutput struct {
	Body ImportPlanResponse
}

// ImportRunResponse reports the outcome of an executed import.
type ImportRunResponse struct {
	Imported int `json:"imported" doc:"Shows copied into the library"`
	Skipped  int `json:"skipped" doc:"Shows skipped because they already exist"`
}

// ImportRunOutput wraps the run result for Huma.
type ImportRunOutput struct {
	Body ImportRunResponse
}

func (s *Server) handlePlanImport(ctx context.Context, input *ImportInput) (*ImportPlanOutput, error) {
	plan, err := s.services.Importer.Plan(ctx, input.Body.SourceFolder)
	if err != nil {
		s.logger.Error("Import planning failed", "error", err, "folder", input.Body.SourceFolder)
		return nil, err
	}
	return &ImportPlanOutput{Body: planResponse(plan)}, nil
}

func (s *Server) handleRunImport(ctx context.Context, input *ImportInput) (*ImportRunOutput, error) {
	plan, err := s.services.Importer.Plan(ctx, input.Body.SourceFolder)
	if err != nil {
		s.logger.Error("Import planning failed", "error", err, "folder", input.Body.SourceFolder)
		return nil, err
	}
	if err := s.services.Importer.Execute(ctx, plan); err != nil {
		s.logger.Error("Import failed", "error", err, "folder", input.Body.SourceFolder)
		return nil, err
	}

	var imported, skipped int
	for _, show := range plan.Shows {
		if show.Exists {
			skipped++
		} else {
			imported++
		}
	}
	return &ImportRunOutput{Body: ImportRunResponse{Imported: imported, Skipped: skipped}}, nil
}

func planResponse(plan service.ImportPlan) ImportPlanResponse {
	out := ImportPlanResponse{SourceFolder: plan.SourceFolder}
	for _, show := range plan.Shows {
		resp := PlannedShowResponse{
			Descriptor: show.Descriptor,
			FolderName: show.FolderName,
			TargetDir:  show.TargetDir,
			Exists:     show.Exists,
		}
		for _, f := range show.Files {
			resp.Files = append(resp.Files, PlannedFileResponse{
				SourcePath: f.SourcePath,
				TargetPath: f.TargetPath,
			})
		}
		out.Shows = append(out.Shows, resp)
	}
	return out
}
