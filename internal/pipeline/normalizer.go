package pipeline

import (
	"regexp"
	"strings"

	"listas-pipeline/internal/model"
	"listas-pipeline/pkg/utils"
)

var digitRunRe = regexp.MustCompile(`\d+`)

// NormalizeRecords canonicalises each record independently of the others and
// returns new records; inputs are never mutated. Validation tags already
// present are carried over by value.
func NormalizeRecords(records []model.CandidateRecord) []model.CandidateRecord {
	normalized := make([]model.CandidateRecord, 0, len(records))
	for _, record := range records {
		normalized = append(normalized, normalizeRecord(record))
	}
	return normalized
}

func normalizeRecord(record model.CandidateRecord) model.CandidateRecord {
	out := record

	dtmnfr := strings.TrimSpace(record.DTMNFR)
	if run := digitRunRe.FindString(dtmnfr); run != "" {
		out.DTMNFR = utils.ZeroPad6(run)
	} else {
		out.DTMNFR = "000000"
	}

	out.Orgao = strings.ToUpper(strings.TrimSpace(record.Orgao))
	if out.Orgao == "" {
		out.Orgao = "AM"
	}

	out.Tipo = strings.TrimSpace(record.Tipo)
	if out.Tipo == "" {
		out.Tipo = "2"
	}

	out.Sigla = strings.ToUpper(strings.TrimSpace(record.Sigla))
	if out.Sigla == "" {
		out.Sigla = "IND"
	}

	out.Simbolo = normalizeOptional(record.Simbolo)

	out.NomeLista = strings.TrimSpace(record.NomeLista)
	if out.NomeLista == "" {
		out.NomeLista = "LISTA " + out.Sigla
	}

	// The extractor keeps "no order given" as 0; here the ballot-position
	// invariant takes over and the floor becomes 1.
	out.NumOrdem = record.NumOrdem
	if out.NumOrdem < 1 {
		out.NumOrdem = 1
	}

	out.NomeCandidato = strings.TrimSpace(record.NomeCandidato)
	if out.NomeCandidato == "" {
		out.NomeCandidato = "CANDIDATO DESCONHECIDO"
	}

	out.PartidoProponente = normalizeOptional(record.PartidoProponente)

	out.Independente = strings.TrimSpace(record.Independente)
	if out.Independente == "" {
		out.Independente = "0"
	}

	return out
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
