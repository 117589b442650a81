package pipeline

import (
	"regexp"
	"strings"

	"listas-pipeline/internal/model"
	"listas-pipeline/pkg/utils"
)

var (
	tokenSplitRe = regexp.MustCompile(`[;|]`)
	keyValueRe   = regexp.MustCompile(`^([A-Z0-9_]+)\s*=\s*(.+)$`)
)

// fieldKeys maps recognized token keys into the candidate schema. Tokens with
// any other key are silently ignored.
var fieldKeys = map[string]bool{
	"DTMNFR":             true,
	"ORGAO":              true,
	"TIPO":               true,
	"SIGLA":              true,
	"SIMBOLO":            true,
	"NOME_LISTA":         true,
	"NUM_ORDEM":          true,
	"NOME_CANDIDATO":     true,
	"PARTIDO_PROPONENTE": true,
	"INDEPENDENTE":       true,
}

func parseSegment(segment string) model.CandidateRecord {
	values := make(map[string]string)
	for _, token := range tokenSplitRe.Split(segment, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		match := keyValueRe.FindStringSubmatch(token)
		if match == nil {
			continue
		}
		key := strings.ToUpper(match[1])
		if !fieldKeys[key] {
			continue
		}
		values[key] = strings.TrimSpace(match[2])
	}

	numOrdem := utils.ParseIntOr(valueOr(values, "NUM_ORDEM", "0"), 0)
	if numOrdem < 0 {
		numOrdem = 0
	}

	return model.CandidateRecord{
		DTMNFR:            valueOr(values, "DTMNFR", "000000"),
		Orgao:             strings.ToUpper(valueOr(values, "ORGAO", "AM")),
		Tipo:              valueOr(values, "TIPO", "2"),
		Sigla:             valueOr(values, "SIGLA", "IND"),
		Simbolo:           optionalValue(values, "SIMBOLO"),
		NomeLista:         values["NOME_LISTA"],
		NumOrdem:          numOrdem,
		NomeCandidato:     valueOr(values, "NOME_CANDIDATO", "CANDIDATO DESCONHECIDO"),
		PartidoProponente: optionalValue(values, "PARTIDO_PROPONENTE"),
		Independente:      values["INDEPENDENTE"],
	}
}

// ExtractCandidates parses each text segment into a raw candidate record,
// preserving segment order. An empty segment list synthesizes the canonical
// two-record placeholder list (one effective and one substitute seat).
func ExtractCandidates(segments []string) []model.CandidateRecord {
	records := make([]model.CandidateRecord, 0, len(segments))
	for _, segment := range segments {
		records = append(records, parseSegment(segment))
	}
	if len(records) == 0 {
		records = append(records, placeholderRecords()...)
	}
	return records
}

func placeholderRecords() []model.CandidateRecord {
	partido := "PS"
	return []model.CandidateRecord{
		{
			DTMNFR:            "150800",
			Orgao:             "AM",
			Tipo:              "2",
			Sigla:             "PS",
			NomeLista:         "Lista Default",
			NumOrdem:          1,
			NomeCandidato:     "Candidato Efetivo",
			PartidoProponente: &partido,
			Independente:      "0",
		},
		{
			DTMNFR:            "150800",
			Orgao:             "AM",
			Tipo:              "3",
			Sigla:             "PS",
			NomeLista:         "Lista Default",
			NumOrdem:          1,
			NomeCandidato:     "Candidato Suplente",
			PartidoProponente: &partido,
			Independente:      "0",
		},
	}
}

func valueOr(values map[string]string, key, fallback string) string {
	if v, ok := values[key]; ok {
		return v
	}
	return fallback
}

func optionalValue(values map[string]string, key string) *string {
	if v, ok := values[key]; ok {
		return &v
	}
	return nil
}
