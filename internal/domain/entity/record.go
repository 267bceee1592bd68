package entity

import (
	"time"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	RecordStatusSucceeded RecordStatus = "succeeded"
	RecordStatusFailed    RecordStatus = "failed"
)

// GenerationRecord is the journal entry written after each provider call. It keeps
// call metadata only; prompts and generated text are never stored.
type GenerationRecord struct {
	ID        string       `json:"id" bson:"id"`
	Endpoint  Endpoint     `json:"endpoint" bson:"endpoint"`
	Mode      string       `json:"mode,omitempty" bson:"mode,omitempty"`
	Model     string       `json:"model,omitempty" bson:"model,omitempty"`
	Status    RecordStatus `json:"status" bson:"status"`
	Shape     string       `json:"shape,omitempty" bson:"shape,omitempty"` // text | structured | raw
	LatencyMs int64        `json:"latency_ms" bson:"latency_ms"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

func NewGenerationRecord(endpoint Endpoint, mode string) *GenerationRecord {
	return &GenerationRecord{
		ID:        uuid.New().String(),
		Endpoint:  endpoint,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *GenerationRecord) Succeed(shape string, latency time.Duration) {
	r.Status = RecordStatusSucceeded
	r.Shape = shape
	r.LatencyMs = latency.Milliseconds()
}

func (r *GenerationRecord) Fail(latency time.Duration) {
	r.Status = RecordStatusFailed
	r.LatencyMs = latency.Milliseconds()
}
