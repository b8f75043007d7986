package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GenerationLogRepository records every plan generation attempt, successful
// or not, for auditing the upstream model.
type GenerationLogRepository struct {
	db *pgxpool.Pool
}

type GenerationLog struct {
	UserID       uuid.UUID
	Model        string
	Prompt       string
	InputPayload []byte
	PlanPayload  []byte
	Success      bool
	ErrorMessage *string
}

// NewGenerationLogRepository creates the generation log repository.
func NewGenerationLogRepository(db *pgxpool.Pool) *GenerationLogRepository {
	return &GenerationLogRepository{db: db}
}

// Record stores one generation attempt.
func (r *GenerationLogRepository) Record(ctx context.Context, log GenerationLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO generation_requests
		 (user_id, model, prompt, input_payload, plan_payload, success, error_message)
		 VALUES ($1, $2, $3, NULLIF($4, '')::jsonb, NULLIF($5, '')::jsonb, $6, $7)`,
		log.UserID,
		log.Model,
		log.Prompt,
		string(log.InputPayload),
		string(log.PlanPayload),
		log.Success,
		log.ErrorMessage,
	)
	return err
}
