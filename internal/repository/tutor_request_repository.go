package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tutorRequestColumns = `id, student_id, tutor_id, message, status, created_at`

type TutorRequestRepository struct {
	*base.Repository
}

func NewTutorRequestRepository(pool *pgxpool.Pool) *TutorRequestRepository {
	return &TutorRequestRepository{Repository: base.NewRepository(pool)}
}

func scanTutorRequest(row pgx.Row) (*model.TutorRequest, error) {
	var req model.TutorRequest
	err := row.Scan(
		&req.ID,
		&req.StudentID,
		&req.TutorID,
		&req.Message,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *TutorRequestRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*model.TutorRequest, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.TutorRequest, error) {
		return scanTutorRequest(row)
	})
}

// Create inserts a request
func (r *TutorRequestRepository) Create(ctx context.Context, req *model.TutorRequest) error {
	query := `
		INSERT INTO tutor_requests (student_id, tutor_id, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, req.StudentID, req.TutorID, req.Message, req.Status).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("create tutor request: %w", err)
	}

	return nil
}

// GetByID returns the request, nil when it does not exist
func (r *TutorRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error) {
	req, err := scanTutorRequest(r.QueryRow(ctx, `SELECT `+tutorRequestColumns+` FROM tutor_requests WHERE id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor request: %w", err)
	}
	return req, nil
}

// HasPendingRequest checks whether the pair has a live pending request
func (r *TutorRequestRepository) HasPendingRequest(ctx context.Context, studentID, tutorID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM tutor_requests
			WHERE student_id = $1 AND tutor_id = $2 AND status = $3
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, studentID, tutorID, model.RequestStatusPending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}

	return exists, nil
}

// Latest returns the most recently created request of the pair
func (r *TutorRequestRepository) Latest(ctx context.Context, studentID, tutorID uuid.UUID) (*model.TutorRequest, error) {
	query := `
		SELECT ` + tutorRequestColumns + `
		FROM tutor_requests
		WHERE student_id = $1 AND tutor_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	req, err := scanTutorRequest(r.QueryRow(ctx, query, studentID, tutorID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest tutor request: %w", err)
	}
	return req, nil
}

func (r *TutorRequestRepository) ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.TutorRequest, error) {
	reqs, err := r.queryMany(ctx,
		`SELECT `+tutorRequestColumns+` FROM tutor_requests WHERE tutor_id = $1 ORDER BY created_at DESC`,
		tutorID,
	)
	if err != nil {
		return nil, fmt.Errorf("get tutor requests: %w", err)
	}
	return reqs, nil
}

func (r *TutorRequestRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.TutorRequest, error) {
	reqs, err := r.queryMany(ctx,
		`SELECT `+tutorRequestColumns+` FROM tutor_requests WHERE student_id = $1 ORDER BY created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("get student requests: %w", err)
	}
	return reqs, nil
}

// UpdateStatus overwrites the status and returns the updated row
func (r *TutorRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.TutorRequest, error) {
	query := `
		UPDATE tutor_requests
		SET status = $1
		WHERE id = $2
		RETURNING ` + tutorRequestColumns

	req, err := scanTutorRequest(r.QueryRow(ctx, query, status, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, fmt.Errorf("update request status: %w", base.ErrNotFound)
		}
		return nil, fmt.Errorf("update request status: %w", err)
	}
	return req, nil
}
