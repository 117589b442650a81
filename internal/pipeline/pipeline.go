package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"listas-pipeline/internal/model"
	"listas-pipeline/internal/store"
	"listas-pipeline/pkg/utils"
)

// Pipeline runs a job through render, recognize, segment, extract, normalize,
// validate and export, recording state transitions in the job store.
type Pipeline struct {
	store      *store.JobStore
	recognizer Recognizer
	rules      Rules
	baseDir    string
}

// New wires a pipeline against the given job store and output base directory.
// A nil recognizer selects the offline stub.
func New(jobStore *store.JobStore, recognizer Recognizer, rules Rules, baseDir string) (*Pipeline, error) {
	if jobStore == nil {
		return nil, fmt.Errorf("job store is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if recognizer == nil {
		recognizer = StubRecognizer{}
	}
	return &Pipeline{
		store:      jobStore,
		recognizer: recognizer,
		rules:      rules,
		baseDir:    baseDir,
	}, nil
}

// Run processes the given input files under jobID. The job moves
// queued -> processing -> ready on success, or to failed with the error
// message recorded. Reprocessing an existing job id overwrites its outputs.
func (p *Pipeline) Run(ctx context.Context, jobID string, files []string) (*model.PipelineResult, error) {
	if _, err := p.store.Ensure(jobID, files); err != nil {
		return nil, err
	}
	if _, err := p.store.MarkState(jobID, model.JobStateProcessing, func(meta *model.JobMetadata) {
		meta.Error = nil
	}); err != nil {
		return nil, err
	}

	result, err := p.process(ctx, jobID, files)
	if err != nil {
		msg := err.Error()
		if _, markErr := p.store.MarkState(jobID, model.JobStateFailed, func(meta *model.JobMetadata) {
			meta.Error = &msg
		}); markErr != nil {
			zap.S().Errorw("failed to record job failure", "job_id", jobID, "error", markErr)
		}
		return nil, err
	}

	if _, err := p.store.MarkState(jobID, model.JobStateReady, func(meta *model.JobMetadata) {
		csvPath := result.CSVPath
		pages := result.PagesProcessed
		meta.CSVPath = &csvPath
		meta.Pages = &pages
		meta.Error = nil
		meta.Stats = model.ValidationSummary{
			RowsTotal:   result.RowsTotal,
			RowsOK:      result.RowsOK,
			RowsWarn:    result.RowsWarn,
			RowsErr:     result.RowsErr,
			OCRConfMean: result.OCRConfMean,
		}.Stats()
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) process(ctx context.Context, jobID string, files []string) (*model.PipelineResult, error) {
	logger := zap.S().With("job_id", jobID)

	artifacts := RenderDocuments(jobID, files)
	logger.Infow("documents rendered", "artifacts", len(artifacts))

	pages, err := p.recognizer.Recognize(ctx, jobID, artifacts)
	if err != nil {
		return nil, fmt.Errorf("recognition failed: %w", err)
	}
	logger.Infow("pages recognized", "pages", len(pages))

	segments := SegmentPages(pages)
	records := ExtractCandidates(segments)
	records = NormalizeRecords(records)
	records = ValidateRecords(p.rules, records)

	summary := Summarize(records, pageConfidenceMean(pages))
	logger.Infow("records validated",
		"rows_total", summary.RowsTotal,
		"rows_ok", summary.RowsOK,
		"rows_warn", summary.RowsWarn,
		"rows_err", summary.RowsErr,
	)

	csvPath, _, err := WriteOutputs(jobID, records, summary, p.baseDir)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	return &model.PipelineResult{
		JobID:          jobID,
		CSVPath:        csvPath,
		RowsTotal:      summary.RowsTotal,
		RowsOK:         summary.RowsOK,
		RowsWarn:       summary.RowsWarn,
		RowsErr:        summary.RowsErr,
		PagesProcessed: len(pages),
		OCRConfMean:    summary.OCRConfMean,
	}, nil
}

// pageConfidenceMean averages the recognizer confidences, nil when there are
// no pages so the summary falls back to severity-derived confidence.
func pageConfidenceMean(pages []model.RecognizedPage) *float64 {
	if len(pages) == 0 {
		return nil
	}
	total := 0.0
	for _, page := range pages {
		total += page.Confidence
	}
	mean := utils.Round4(total / float64(len(pages)))
	return &mean
}
