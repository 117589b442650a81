package model

import (
	"encoding/json"
	"fmt"
)

// Severity ranks a validation outcome. The zero value is OK so freshly
// extracted records start with every field tagged clean.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarn
	SeverityError
)

// Confidence returns the per-record confidence contribution for a severity.
func (s Severity) Confidence() float64 {
	switch s {
	case SeverityWarn:
		return 0.7
	case SeverityError:
		return 0.3
	default:
		return 1.0
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "OK"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "OK":
		*s = SeverityOK
	case "WARN":
		*s = SeverityWarn
	case "ERROR":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity tag: %q", tag)
	}
	return nil
}

// FieldValidation carries one severity tag per schema column. Using a fixed
// shape instead of a map keeps field coverage a compile-time property.
type FieldValidation struct {
	DTMNFR            Severity `json:"DTMNFR"`
	Orgao             Severity `json:"ORGAO"`
	Tipo              Severity `json:"TIPO"`
	Sigla             Severity `json:"SIGLA"`
	Simbolo           Severity `json:"SIMBOLO"`
	NomeLista         Severity `json:"NOME_LISTA"`
	NumOrdem          Severity `json:"NUM_ORDEM"`
	NomeCandidato     Severity `json:"NOME_CANDIDATO"`
	PartidoProponente Severity `json:"PARTIDO_PROPONENTE"`
	Independente      Severity `json:"INDEPENDENTE"`
}

// Worst returns the maximum severity across all field tags.
func (v FieldValidation) Worst() Severity {
	worst := SeverityOK
	for _, s := range []Severity{
		v.DTMNFR, v.Orgao, v.Tipo, v.Sigla, v.Simbolo,
		v.NomeLista, v.NumOrdem, v.NomeCandidato, v.PartidoProponente, v.Independente,
	} {
		if s > worst {
			worst = s
		}
	}
	return worst
}

// CandidateRecord is a single row of a candidate list. Optional columns are
// pointers so an absent value serialises as null rather than an empty string.
type CandidateRecord struct {
	DTMNFR            string          `json:"DTMNFR"`
	Orgao             string          `json:"ORGAO"`
	Tipo              string          `json:"TIPO"`
	Sigla             string          `json:"SIGLA"`
	Simbolo           *string         `json:"SIMBOLO"`
	NomeLista         string          `json:"NOME_LISTA"`
	NumOrdem          int             `json:"NUM_ORDEM"`
	NomeCandidato     string          `json:"NOME_CANDIDATO"`
	PartidoProponente *string         `json:"PARTIDO_PROPONENTE"`
	Independente      string          `json:"INDEPENDENTE"`
	Validation        FieldValidation `json:"validation"`
}

// DocumentArtifact is an input document classified by the renderer.
type DocumentArtifact struct {
	JobID      string `json:"job_id"`
	SourcePath string `json:"source_path"`
	MediaType  string `json:"media_type"`
}

// RecognizedPage is the text-recognition result for a single page.
type RecognizedPage struct {
	DocumentID string  `json:"document_id"`
	PageNumber int     `json:"page_number"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}
