package pipeline

import (
	"path/filepath"
	"strings"

	"listas-pipeline/internal/model"
)

var supportedMedia = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".md":   "text/markdown",
}

const defaultMediaType = "application/octet-stream"

// RenderDocuments classifies each input file by extension into a declared
// media type. Unknown extensions degrade to octet-stream rather than erroring
// and the input order is preserved.
func RenderDocuments(jobID string, files []string) []model.DocumentArtifact {
	artifacts := make([]model.DocumentArtifact, 0, len(files))
	for _, path := range files {
		suffix := strings.ToLower(filepath.Ext(path))
		mediaType, ok := supportedMedia[suffix]
		if !ok {
			mediaType = defaultMediaType
		}
		artifacts = append(artifacts, model.DocumentArtifact{
			JobID:      jobID,
			SourcePath: path,
			MediaType:  mediaType,
		})
	}
	return artifacts
}
