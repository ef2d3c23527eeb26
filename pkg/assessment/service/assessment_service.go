package service

import (
	"context"
	"time"

	"rwh/entities"
	"rwh/pkg/intake"
)

type AssessmentService interface {
	Assess(ctx context.Context, raw intake.RawRecord, reference time.Time) (*entities.AssessmentResult, error)
}
