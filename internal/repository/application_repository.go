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

const applicationColumns = `id, post_id, applicant_id, post_owner_id, message, status, created_at`

type ApplicationRepository struct {
	*base.Repository
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{Repository: base.NewRepository(pool)}
}

func scanApplication(row pgx.Row) (*model.Application, error) {
	var a model.Application
	err := row.Scan(
		&a.ID,
		&a.PostID,
		&a.ApplicantID,
		&a.PostOwnerID,
		&a.Message,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*model.Application, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Application, error) {
		return scanApplication(row)
	})
}

func (r *ApplicationRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*model.Application, error) {
	a, err := scanApplication(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *model.Application) error {
	query := `
		INSERT INTO contact_applications (post_id, applicant_id, post_owner_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, a.PostID, a.ApplicantID, a.PostOwnerID, a.Message, a.Status).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	a, err := r.queryOne(ctx, `SELECT `+applicationColumns+` FROM contact_applications WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

// FindByPostAndApplicant returns the earliest application of the pair, nil when there is none
func (r *ApplicationRepository) FindByPostAndApplicant(ctx context.Context, postID, applicantID uuid.UUID) (*model.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM contact_applications
		WHERE post_id = $1 AND applicant_id = $2
		ORDER BY created_at
		LIMIT 1
	`

	a, err := r.queryOne(ctx, query, postID, applicantID)
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) ListByPostOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Application, error) {
	apps, err := r.queryMany(ctx,
		`SELECT `+applicationColumns+` FROM contact_applications WHERE post_owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list owner applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error) {
	apps, err := r.queryMany(ctx,
		`SELECT `+applicationColumns+` FROM contact_applications WHERE applicant_id = $1 ORDER BY created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list applicant applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus overwrites the status and returns the updated row
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	query := `
		UPDATE contact_applications
		SET status = $1
		WHERE id = $2
		RETURNING ` + applicationColumns

	a, err := scanApplication(r.QueryRow(ctx, query, status, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, fmt.Errorf("update application status: %w", base.ErrNotFound)
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	count, err := r.Repository.Count(ctx, `SELECT COUNT(*) FROM contact_applications`)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}
