package model

// ValidationSummary buckets records by their worst severity and carries the
// OCR confidence mean for the run. Recomputed each run, never persisted on
// its own.
type ValidationSummary struct {
	RowsTotal   int      `json:"rows_total"`
	RowsOK      int      `json:"rows_ok"`
	RowsWarn    int      `json:"rows_warn"`
	RowsErr     int      `json:"rows_err"`
	OCRConfMean *float64 `json:"ocr_conf_mean"`
}

// Stats converts the summary into the persisted stats representation.
func (s ValidationSummary) Stats() StatsMap {
	total := float64(s.RowsTotal)
	ok := float64(s.RowsOK)
	warn := float64(s.RowsWarn)
	errs := float64(s.RowsErr)
	stats := StatsMap{
		"rows_total":    &total,
		"rows_ok":       &ok,
		"rows_warn":     &warn,
		"rows_err":      &errs,
		"ocr_conf_mean": nil,
	}
	if s.OCRConfMean != nil {
		mean := *s.OCRConfMean
		stats["ocr_conf_mean"] = &mean
	}
	return stats
}

// PipelineResult is the high-level summary returned after processing a job.
type PipelineResult struct {
	JobID          string   `json:"job_id"`
	CSVPath        string   `json:"csv_path"`
	RowsTotal      int      `json:"rows_total"`
	RowsOK         int      `json:"rows_ok"`
	RowsWarn       int      `json:"rows_warn"`
	RowsErr        int      `json:"rows_err"`
	PagesProcessed int      `json:"pages_processed"`
	OCRConfMean    *float64 `json:"ocr_conf_mean,omitempty"`
}
