package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"listas-pipeline/internal/model"
)

func baseRecord() model.CandidateRecord {
	return model.CandidateRecord{
		DTMNFR:        "150800",
		Orgao:         "AM",
		Tipo:          "2",
		Sigla:         "PS",
		NomeLista:     "Lista A",
		NumOrdem:      1,
		NomeCandidato: "Ana Silva",
		Independente:  "0",
	}
}

func TestValidateRecordsScenario(t *testing.T) {
	clean := baseRecord()

	padded := baseRecord()
	padded.DTMNFR = "1508"
	padded.NomeLista = "Lista B"
	padded.NomeCandidato = "Bruno Costa"
	padded.NumOrdem = 2

	badParty := baseRecord()
	badParty.Sigla = "XXX"
	badParty.NomeLista = "Lista C"
	badParty.NomeCandidato = "Carla Nunes"

	out := ValidateRecords(DefaultRules(), []model.CandidateRecord{clean, padded, badParty})
	require.Len(t, out, 3)

	// Sorted by (DTMNFR, ORGAO, SIGLA, NOME_LISTA, TIPO, NUM_ORDEM): the
	// padded district key sorts first.
	require.Equal(t, "Bruno Costa", out[0].NomeCandidato)
	require.Equal(t, "001508", out[0].DTMNFR)
	require.Equal(t, model.SeverityWarn, out[0].Validation.DTMNFR)
	require.Equal(t, 1, out[0].NumOrdem)
	require.Equal(t, model.SeverityWarn, out[0].Validation.NumOrdem)
	require.Equal(t, model.SeverityWarn, out[0].Validation.Worst())

	require.Equal(t, "Ana Silva", out[1].NomeCandidato)
	require.Equal(t, model.SeverityOK, out[1].Validation.Worst())

	require.Equal(t, "Carla Nunes", out[2].NomeCandidato)
	require.Equal(t, "XXX", out[2].Sigla)
	require.Equal(t, model.SeverityError, out[2].Validation.Sigla)
	require.Equal(t, model.SeverityError, out[2].Validation.Worst())

	summary := Summarize(out, nil)
	require.Equal(t, 3, summary.RowsTotal)
	require.Equal(t, 1, summary.RowsOK)
	require.Equal(t, 1, summary.RowsWarn)
	require.Equal(t, 1, summary.RowsErr)
	require.NotNil(t, summary.OCRConfMean)
	require.InDelta(t, 0.6667, *summary.OCRConfMean, 1e-9)
}

func TestValidateRecordsIdempotent(t *testing.T) {
	padded := baseRecord()
	padded.DTMNFR = "1508"
	padded.NumOrdem = 3

	badParty := baseRecord()
	badParty.Sigla = "XXX"
	badParty.NomeLista = "Lista C"

	rules := DefaultRules()
	once := ValidateRecords(rules, []model.CandidateRecord{padded, badParty})
	twice := ValidateRecords(rules, once)
	require.Equal(t, once, twice)
}

func TestValidateRecordsFieldRules(t *testing.T) {
	record := baseRecord()
	record.Orgao = "XX"
	record.Tipo = "9"
	record.NomeLista = ""
	record.Independente = "xyz"

	out := ValidateRecords(DefaultRules(), []model.CandidateRecord{record})
	require.Len(t, out, 1)

	got := out[0]
	require.Equal(t, "AM", got.Orgao)
	require.Equal(t, model.SeverityWarn, got.Validation.Orgao)
	require.Equal(t, "2", got.Tipo)
	require.Equal(t, model.SeverityWarn, got.Validation.Tipo)
	require.Equal(t, "LISTA PS", got.NomeLista)
	require.Equal(t, model.SeverityWarn, got.Validation.NomeLista)
	require.Equal(t, "0", got.Independente)
	require.Equal(t, model.SeverityWarn, got.Validation.Independente)
}

func TestValidateRecordsLowercaseIndependenteAccepted(t *testing.T) {
	record := baseRecord()
	record.Independente = "sim"

	out := ValidateRecords(DefaultRules(), []model.CandidateRecord{record})
	require.Equal(t, "sim", out[0].Independente)
	require.Equal(t, model.SeverityOK, out[0].Validation.Independente)
}

func TestValidateRecordsEmptyDistrictNotPadded(t *testing.T) {
	record := baseRecord()
	record.DTMNFR = ""

	out := ValidateRecords(DefaultRules(), []model.CandidateRecord{record})
	require.Empty(t, out[0].DTMNFR)
	require.Equal(t, model.SeverityOK, out[0].Validation.DTMNFR)
}

func TestValidateRecordsRenumbersGroupsDensely(t *testing.T) {
	var records []model.CandidateRecord
	for _, ord := range []int{5, 2, 9} {
		record := baseRecord()
		record.NumOrdem = ord
		records = append(records, record)
	}
	other := baseRecord()
	other.Tipo = "3"
	other.NumOrdem = 1
	records = append(records, other)

	out := ValidateRecords(DefaultRules(), records)
	require.Len(t, out, 4)

	// Same group, relative order by original NUM_ORDEM, positions made dense.
	for i := 0; i < 3; i++ {
		require.Equal(t, "2", out[i].Tipo)
		require.Equal(t, i+1, out[i].NumOrdem)
		require.Equal(t, model.SeverityWarn, out[i].Validation.NumOrdem)
	}

	// The substitute list is its own group and was already dense.
	require.Equal(t, "3", out[3].Tipo)
	require.Equal(t, 1, out[3].NumOrdem)
	require.Equal(t, model.SeverityOK, out[3].Validation.NumOrdem)
}

func TestValidateRecordsDoesNotMutateInput(t *testing.T) {
	record := baseRecord()
	record.DTMNFR = "1508"
	input := []model.CandidateRecord{record}

	_ = ValidateRecords(DefaultRules(), input)
	require.Equal(t, "1508", input[0].DTMNFR)
	require.Equal(t, model.SeverityOK, input[0].Validation.DTMNFR)
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	broken := DefaultRules()
	broken.Siglas = nil
	err := broken.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidRules)
}

func TestSummarize(t *testing.T) {
	t.Run("empty set has nil confidence", func(t *testing.T) {
		summary := Summarize(nil, nil)
		require.Zero(t, summary.RowsTotal)
		require.Nil(t, summary.OCRConfMean)
	})

	t.Run("external mean reported verbatim", func(t *testing.T) {
		mean := 0.93125
		summary := Summarize([]model.CandidateRecord{baseRecord()}, &mean)
		require.NotNil(t, summary.OCRConfMean)
		require.Equal(t, 0.93125, *summary.OCRConfMean)
	})

	t.Run("derived mean stays within severity bounds", func(t *testing.T) {
		bad := baseRecord()
		bad.Validation.Sigla = model.SeverityError
		summary := Summarize([]model.CandidateRecord{bad}, nil)
		require.NotNil(t, summary.OCRConfMean)
		require.GreaterOrEqual(t, *summary.OCRConfMean, 0.3)
		require.LessOrEqual(t, *summary.OCRConfMean, 1.0)
		require.Equal(t, 0.3, *summary.OCRConfMean)
	})
}
