package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"listas-pipeline/internal/model"
)

// Recognizer turns rendered artifacts into text pages with a confidence score
// in [0,1]. The pipeline treats recognition as a pluggable external service.
type Recognizer interface {
	Recognize(ctx context.Context, jobID string, artifacts []model.DocumentArtifact) ([]model.RecognizedPage, error)
}

// StubRecognizer keeps the pipeline offline friendly: textual formats are
// read from disk, binary formats yield canned list text with a synthetic
// confidence. One page per artifact.
type StubRecognizer struct{}

var textualSuffixes = map[string]bool{
	".txt":  true,
	".csv":  true,
	".md":   true,
	".json": true,
}

func confidenceForSuffix(suffix string) float64 {
	if textualSuffixes[suffix] {
		return 0.99
	}
	switch suffix {
	case ".pdf":
		return 0.93
	case ".docx", ".xlsx":
		return 0.9
	default:
		return 0.75
	}
}

// readTextFile substitutes empty text for unreadable inputs; decode failures
// never propagate out of the recognition stage.
func readTextFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		zap.S().Warnw("unreadable input, substituting empty text", "path", path, "error", err)
		return ""
	}
	return string(data)
}

func stubText(jobID string, artifact model.DocumentArtifact) string {
	name := filepath.Base(artifact.SourcePath)
	base := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
	if base == "" {
		if len(jobID) > 6 {
			base = strings.ToUpper(jobID[:6])
		} else {
			base = strings.ToUpper(jobID)
		}
	}
	return fmt.Sprintf(
		"DTMNFR=150800;ORGAO=AM;SIGLA=PS;TIPO=2;NUM_ORDEM=1;NOME_LISTA=Lista %s;"+
			"NOME_CANDIDATO=Candidato Efetivo;PARTIDO_PROPONENTE=PS;INDEPENDENTE=0\n"+
			"DTMNFR=150800;ORGAO=AM;SIGLA=PS;TIPO=3;NUM_ORDEM=1;NOME_LISTA=Lista %s;"+
			"NOME_CANDIDATO=Candidato Suplente;PARTIDO_PROPONENTE=PS;INDEPENDENTE=0",
		base, base)
}

func (StubRecognizer) Recognize(ctx context.Context, jobID string, artifacts []model.DocumentArtifact) ([]model.RecognizedPage, error) {
	pages := make([]model.RecognizedPage, 0, len(artifacts))
	for _, artifact := range artifacts {
		suffix := strings.ToLower(filepath.Ext(artifact.SourcePath))

		var text string
		switch {
		case textualSuffixes[suffix]:
			text = readTextFile(artifact.SourcePath)
		case suffix == ".pdf", suffix == ".docx", suffix == ".xlsx":
			text = stubText(jobID, artifact)
		default:
			text = readTextFile(artifact.SourcePath)
		}

		pages = append(pages, model.RecognizedPage{
			DocumentID: artifact.SourcePath,
			PageNumber: 1,
			Text:       strings.TrimSpace(text),
			Confidence: confidenceForSuffix(suffix),
		})
	}
	return pages, nil
}
