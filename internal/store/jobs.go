package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"listas-pipeline/internal/model"
)

// ErrNotFound is returned when a job id has no persisted metadata.
var ErrNotFound = errors.New("job not found")

// JobStore keeps one JSON document per job under <base>/jobs/<job_id>.
type JobStore struct {
	baseDir string
	jobsDir string
}

// NewJobStore creates the store directories under baseDir if needed.
func NewJobStore(baseDir string) (*JobStore, error) {
	jobsDir := filepath.Join(baseDir, "jobs")
	if err := os.MkdirAll(jobsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create jobs directory: %w", err)
	}
	return &JobStore{baseDir: baseDir, jobsDir: jobsDir}, nil
}

func (s *JobStore) jobDir(jobID string) string {
	return filepath.Join(s.jobsDir, jobID)
}

func (s *JobStore) metaPath(jobID string) string {
	return filepath.Join(s.jobDir(jobID), "job.json")
}

// Ensure returns the existing metadata for jobID unchanged, or creates a new
// queued record when none exists.
func (s *JobStore) Ensure(jobID string, inputFiles []string) (*model.JobMetadata, error) {
	meta, err := s.Load(jobID)
	if err == nil {
		return meta, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	files := make([]string, len(inputFiles))
	copy(files, inputFiles)
	meta = &model.JobMetadata{
		JobID:      jobID,
		State:      model.JobStateQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
		InputFiles: files,
		Stats:      model.StatsMap{},
	}
	if err := s.persist(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Load reads the metadata for jobID, failing with ErrNotFound when absent.
func (s *JobStore) Load(jobID string) (*model.JobMetadata, error) {
	data, err := os.ReadFile(s.metaPath(jobID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to read job metadata: %w", err)
	}
	meta := new(model.JobMetadata)
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("failed to decode job metadata: %w", err)
	}
	return meta, nil
}

// Update applies changes to the stored record and bumps updated_at.
func (s *JobStore) Update(jobID string, apply func(*model.JobMetadata)) (*model.JobMetadata, error) {
	meta, err := s.Load(jobID)
	if err != nil {
		return nil, err
	}
	if apply != nil {
		apply(meta)
	}
	meta.UpdatedAt = time.Now().UTC()
	if err := s.persist(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// MarkState moves the job to state, applying any extra changes atomically
// with the transition.
func (s *JobStore) MarkState(jobID string, state model.JobState, apply func(*model.JobMetadata)) (*model.JobMetadata, error) {
	return s.Update(jobID, func(meta *model.JobMetadata) {
		meta.State = state
		if apply != nil {
			apply(meta)
		}
	})
}

func (s *JobStore) persist(meta *model.JobMetadata) error {
	if err := os.MkdirAll(s.jobDir(meta.JobID), 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode job metadata: %w", err)
	}
	if err := os.WriteFile(s.metaPath(meta.JobID), data, 0644); err != nil {
		return fmt.Errorf("failed to write job metadata: %w", err)
	}
	return nil
}
