package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"listas-pipeline/internal/model"
)

func TestNormalizeRecordDTMNFR(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short digit run padded", input: "1508", want: "001508"},
		{name: "digits inside noise", input: "concelho 1508 norte", want: "001508"},
		{name: "long run truncated", input: "15080099", want: "150800"},
		{name: "no digits", input: "lisboa", want: "000000"},
		{name: "empty", input: "", want: "000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NormalizeRecords([]model.CandidateRecord{{DTMNFR: tt.input}})
			require.Len(t, out, 1)
			require.Equal(t, tt.want, out[0].DTMNFR)
		})
	}
}

func TestNormalizeRecordDefaults(t *testing.T) {
	out := NormalizeRecords([]model.CandidateRecord{{}})
	require.Len(t, out, 1)

	record := out[0]
	require.Equal(t, "000000", record.DTMNFR)
	require.Equal(t, "AM", record.Orgao)
	require.Equal(t, "2", record.Tipo)
	require.Equal(t, "IND", record.Sigla)
	require.Equal(t, "LISTA IND", record.NomeLista)
	require.Equal(t, 1, record.NumOrdem)
	require.Equal(t, "CANDIDATO DESCONHECIDO", record.NomeCandidato)
	require.Equal(t, "0", record.Independente)
}

func TestNormalizeRecordTrimsAndUppercases(t *testing.T) {
	simbolo := "  estrela  "
	partido := "   "
	out := NormalizeRecords([]model.CandidateRecord{{
		Orgao:             " cm ",
		Sigla:             " psd ",
		NomeLista:         "  Coligação Local  ",
		NomeCandidato:     "  João Pereira ",
		Simbolo:           &simbolo,
		PartidoProponente: &partido,
	}})
	require.Len(t, out, 1)

	record := out[0]
	require.Equal(t, "CM", record.Orgao)
	require.Equal(t, "PSD", record.Sigla)
	require.Equal(t, "Coligação Local", record.NomeLista)
	require.Equal(t, "João Pereira", record.NomeCandidato)
	require.NotNil(t, record.Simbolo)
	require.Equal(t, "estrela", *record.Simbolo)
	require.Nil(t, record.PartidoProponente)
}

func TestNormalizeRecordFloorsOrderAtOne(t *testing.T) {
	out := NormalizeRecords([]model.CandidateRecord{
		{NumOrdem: 0},
		{NumOrdem: -5},
		{NumOrdem: 3},
	})
	require.Len(t, out, 3)
	require.Equal(t, 1, out[0].NumOrdem)
	require.Equal(t, 1, out[1].NumOrdem)
	require.Equal(t, 3, out[2].NumOrdem)
}

func TestNormalizeRecordsDoesNotMutateInput(t *testing.T) {
	input := []model.CandidateRecord{{DTMNFR: "1508", Orgao: " cm ", NumOrdem: 0}}
	_ = NormalizeRecords(input)

	require.Equal(t, "1508", input[0].DTMNFR)
	require.Equal(t, " cm ", input[0].Orgao)
	require.Equal(t, 0, input[0].NumOrdem)
}
