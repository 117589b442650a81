package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// JobState tracks a job through its lifecycle. Transitions only move forward
// except for failed, which is reachable from any non-terminal state.
type JobState string

const (
	JobStateQueued     JobState = "queued"
	JobStateProcessing JobState = "processing"
	JobStateReady      JobState = "ready"
	JobStateApproved   JobState = "approved"
	JobStateFailed     JobState = "failed"
)

// StatsMap holds the persisted quality statistics of a job. Values serialise
// as ints when integral, floats otherwise, and null entries stay null.
type StatsMap map[string]*float64

func (m StatsMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m))
	for key, value := range m {
		if value == nil {
			out[key] = json.RawMessage("null")
			continue
		}
		if *value == float64(int64(*value)) {
			out[key] = json.RawMessage(strconv.FormatInt(int64(*value), 10))
		} else {
			out[key] = json.RawMessage(strconv.FormatFloat(*value, 'f', -1, 64))
		}
	}
	return json.Marshal(out)
}

func (m *StatsMap) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	stats := make(StatsMap, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			stats[key] = nil
		case float64:
			n := v
			stats[key] = &n
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				stats[key] = &n
			}
		}
	}
	*m = stats
	return nil
}

// JobMetadata is the durable record kept for each job in the job store.
type JobMetadata struct {
	JobID      string    `json:"job_id"`
	State      JobState  `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	InputFiles []string  `json:"input_files"`
	CSVPath    *string   `json:"csv_path"`
	Pages      *int      `json:"pages"`
	Stats      StatsMap  `json:"stats"`
	Error      *string   `json:"error"`
}
