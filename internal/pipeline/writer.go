package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"listas-pipeline/internal/model"
	"listas-pipeline/pkg/utils"
)

// CSVColumns is the fixed output column order of the canonical CSV.
var CSVColumns = []string{
	"DTMNFR",
	"ORGAO",
	"TIPO",
	"SIGLA",
	"SIMBOLO",
	"NOME_LISTA",
	"NUM_ORDEM",
	"NOME_CANDIDATO",
	"PARTIDO_PROPONENTE",
	"INDEPENDENTE",
}

// WriteOutputs serialises the validated record set to the job's
// semicolon-delimited CSV plus the meta and preview JSON side-files, and
// returns the CSV and meta paths.
func WriteOutputs(jobID string, records []model.CandidateRecord, summary model.ValidationSummary, baseDir string) (string, string, error) {
	om := utils.NewOutputManager(baseDir)
	if _, err := om.EnsureJobDir(jobID); err != nil {
		return "", "", err
	}

	csvPath := om.CSVPath(jobID)
	if err := writeCSV(csvPath, records); err != nil {
		return "", "", err
	}

	metaPath := om.MetaPath(jobID)
	if err := writeMeta(metaPath, jobID, summary); err != nil {
		return "", "", err
	}

	if err := mergePreview(om.PreviewPath(jobID), jobID, summary); err != nil {
		return "", "", err
	}

	return csvPath, metaPath, nil
}

func writeCSV(path string, records []model.CandidateRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	if err := writer.Write(CSVColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.DTMNFR,
			record.Orgao,
			record.Tipo,
			record.Sigla,
			optionalString(record.Simbolo),
			record.NomeLista,
			strconv.Itoa(record.NumOrdem),
			record.NomeCandidato,
			optionalString(record.PartidoProponente),
			record.Independente,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeMeta(path, jobID string, summary model.ValidationSummary) error {
	payload := map[string]interface{}{
		"job_id":     jobID,
		"rows_total": summary.RowsTotal,
		"rows_ok":    summary.RowsOK,
		"rows_warn":  summary.RowsWarn,
		"rows_err":   summary.RowsErr,
	}
	if summary.OCRConfMean != nil {
		payload["ocr_conf_mean"] = *summary.OCRConfMean
	}
	return writeJSONFile(path, payload)
}

// mergePreview keeps the preview document additive: only the stats section is
// replaced so keys written by an external preview generator survive reruns.
func mergePreview(path, jobID string, summary model.ValidationSummary) error {
	doc := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			doc = map[string]interface{}{}
		}
	}
	if _, ok := doc["job_id"]; !ok {
		doc["job_id"] = jobID
	}
	doc["stats"] = summary.Stats()
	return writeJSONFile(path, doc)
}

func writeJSONFile(path string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
