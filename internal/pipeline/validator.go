package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"listas-pipeline/internal/model"
	"listas-pipeline/pkg/utils"
)

// ErrInvalidRules flags malformed validation configuration.
var ErrInvalidRules = errors.New("invalid validation rules")

// Rules holds the allowed value sets used by the validator. Build it once at
// startup via DefaultRules and treat it as immutable afterwards.
type Rules struct {
	Orgaos        map[string]struct{}
	Tipos         map[string]struct{}
	Siglas        map[string]struct{}
	Independentes map[string]struct{}
}

// DefaultRules returns the domain rule sets for Portuguese local-election
// candidate lists.
func DefaultRules() Rules {
	return Rules{
		Orgaos: newSet("AM", "CM", "AF"),
		Tipos:  newSet("2", "3"),
		Siglas: newSet(
			"PS", "PSD", "PSD/CDS", "CDS", "CDU", "BE",
			"IL", "LIVRE", "PAN", "CHEGA", "IND",
		),
		Independentes: newSet("0", "1", "S", "N", "SIM", "NAO"),
	}
}

// Validate rejects rule sets that could never accept any record.
func (r Rules) Validate() error {
	if len(r.Orgaos) == 0 {
		return fmt.Errorf("%w: empty ORGAO set", ErrInvalidRules)
	}
	if len(r.Tipos) == 0 {
		return fmt.Errorf("%w: empty TIPO set", ErrInvalidRules)
	}
	if len(r.Siglas) == 0 {
		return fmt.Errorf("%w: empty SIGLA set", ErrInvalidRules)
	}
	if len(r.Independentes) == 0 {
		return fmt.Errorf("%w: empty INDEPENDENTE set", ErrInvalidRules)
	}
	return nil
}

func newSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ValidateRecords applies the per-field rules, sorts the set, renumbers
// ballot positions within each list group and returns new records. Running it
// again over its own output changes nothing.
func ValidateRecords(rules Rules, records []model.CandidateRecord) []model.CandidateRecord {
	validated := make([]model.CandidateRecord, len(records))
	copy(validated, records)

	for i := range validated {
		applyFieldRules(rules, &validated[i])
	}

	sortRecords(validated)
	renumberGroups(validated)
	sortRecords(validated)
	return validated
}

func applyFieldRules(rules Rules, record *model.CandidateRecord) {
	if record.DTMNFR != "" && !isSixDigits(record.DTMNFR) {
		record.Validation.DTMNFR = model.SeverityWarn
		record.DTMNFR = utils.ZeroPad6(record.DTMNFR)
	}

	if _, ok := rules.Orgaos[record.Orgao]; !ok {
		record.Validation.Orgao = model.SeverityWarn
		record.Orgao = "AM"
	}

	if _, ok := rules.Tipos[record.Tipo]; !ok {
		record.Validation.Tipo = model.SeverityWarn
		record.Tipo = "2"
	}

	// An unrecognized party is a data problem, not something to silently fix.
	if _, ok := rules.Siglas[record.Sigla]; !ok {
		record.Validation.Sigla = model.SeverityError
	}

	if record.NomeLista == "" {
		record.Validation.NomeLista = model.SeverityWarn
		sigla := record.Sigla
		if sigla == "" {
			sigla = "IND"
		}
		record.NomeLista = "LISTA " + sigla
	}

	if _, ok := rules.Independentes[strings.ToUpper(record.Independente)]; !ok {
		record.Validation.Independente = model.SeverityWarn
		record.Independente = "0"
	}
}

func isSixDigits(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sortRecords orders by (DTMNFR, ORGAO, SIGLA, NOME_LISTA, TIPO, NUM_ORDEM),
// ascending and stable.
func sortRecords(records []model.CandidateRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.DTMNFR != b.DTMNFR {
			return a.DTMNFR < b.DTMNFR
		}
		if a.Orgao != b.Orgao {
			return a.Orgao < b.Orgao
		}
		if a.Sigla != b.Sigla {
			return a.Sigla < b.Sigla
		}
		if a.NomeLista != b.NomeLista {
			return a.NomeLista < b.NomeLista
		}
		if a.Tipo != b.Tipo {
			return a.Tipo < b.Tipo
		}
		return a.NumOrdem < b.NumOrdem
	})
}

type listKey struct {
	dtmnfr    string
	orgao     string
	sigla     string
	nomeLista string
	tipo      string
}

// renumberGroups assigns dense 1-based NUM_ORDEM within each list group,
// tagging records whose original value differs from the assigned position.
// Records must already be in sort order.
func renumberGroups(records []model.CandidateRecord) {
	counters := make(map[listKey]int)
	for i := range records {
		record := &records[i]
		key := listKey{record.DTMNFR, record.Orgao, record.Sigla, record.NomeLista, record.Tipo}
		counters[key]++
		if position := counters[key]; record.NumOrdem != position {
			record.Validation.NumOrdem = model.SeverityWarn
			record.NumOrdem = position
		}
	}
}

// Summarize buckets records by their worst severity. When the recognizer
// supplied a confidence mean it is reported verbatim; otherwise the mean of
// the severity-derived confidences is used, rounded to four decimals. With
// zero records the mean stays nil.
func Summarize(records []model.CandidateRecord, ocrConfMean *float64) model.ValidationSummary {
	summary := model.ValidationSummary{RowsTotal: len(records)}

	confidenceTotal := 0.0
	for _, record := range records {
		worst := record.Validation.Worst()
		switch worst {
		case model.SeverityOK:
			summary.RowsOK++
		case model.SeverityWarn:
			summary.RowsWarn++
		default:
			summary.RowsErr++
		}
		confidenceTotal += worst.Confidence()
	}

	if ocrConfMean != nil {
		mean := *ocrConfMean
		summary.OCRConfMean = &mean
	} else if len(records) > 0 {
		mean := utils.Round4(confidenceTotal / float64(len(records)))
		summary.OCRConfMean = &mean
	}
	return summary
}
