package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager handles output file organization and path management for
// processed jobs. All artefacts for a job live under processed/<job_id>.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager rooted at baseOutputDir.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// JobDir returns the directory holding a job's output files.
func (om *OutputManager) JobDir(jobID string) string {
	return filepath.Join(om.BaseOutputDir, "processed", jobID)
}

// EnsureJobDir creates the job output directory if it doesn't exist.
func (om *OutputManager) EnsureJobDir(jobID string) (string, error) {
	jobDir := om.JobDir(jobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create job output directory: %w", err)
	}
	return jobDir, nil
}

// CSVPath returns the canonical CSV path for a job.
func (om *OutputManager) CSVPath(jobID string) string {
	return filepath.Join(om.JobDir(jobID), fmt.Sprintf("listas_%s.csv", jobID))
}

// MetaPath returns the metadata summary path for a job.
func (om *OutputManager) MetaPath(jobID string) string {
	return filepath.Join(om.JobDir(jobID), "meta.json")
}

// PreviewPath returns the additive preview document path for a job.
func (om *OutputManager) PreviewPath(jobID string) string {
	return filepath.Join(om.JobDir(jobID), "preview.json")
}
