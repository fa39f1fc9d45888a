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

const postColumns = `
	id, user_id, class_level, group_name, subject, salary, gender, location,
	requirement, student_id_card_url, is_approved, approval_status, is_booked, booked_by, created_at`

type PostRepository struct {
	*base.Repository
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{Repository: base.NewRepository(pool)}
}

func scanPost(row pgx.Row) (*model.TuitionPost, error) {
	var p model.TuitionPost
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.ClassLevel,
		&p.Group,
		&p.Subject,
		&p.Salary,
		&p.Gender,
		&p.Location,
		&p.Requirement,
		&p.StudentIDCardURL,
		&p.IsApproved,
		&p.ApprovalStatus,
		&p.IsBooked,
		&p.BookedBy,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*model.TuitionPost, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.TuitionPost, error) {
		return scanPost(row)
	})
}

// Create inserts a post; approval fields are taken from the model as set by the caller
func (r *PostRepository) Create(ctx context.Context, p *model.TuitionPost) error {
	query := `
		INSERT INTO tuition_posts (
			user_id, class_level, group_name, subject, salary, gender, location,
			requirement, student_id_card_url, is_approved, approval_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, is_booked, created_at
	`

	err := r.QueryRow(
		ctx, query,
		p.OwnerID,
		p.ClassLevel,
		p.Group,
		p.Subject,
		p.Salary,
		p.Gender,
		p.Location,
		p.Requirement,
		p.StudentIDCardURL,
		p.IsApproved,
		p.ApprovalStatus,
	).Scan(&p.ID, &p.IsBooked, &p.CreatedAt)

	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TuitionPost, error) {
	p, err := scanPost(r.QueryRow(ctx, `SELECT `+postColumns+` FROM tuition_posts WHERE id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *PostRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.TuitionPost, error) {
	if len(ids) == 0 {
		return []*model.TuitionPost{}, nil
	}

	posts, err := r.queryMany(ctx, `SELECT `+postColumns+` FROM tuition_posts WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get posts by ids: %w", err)
	}
	return posts, nil
}

// ListApproved returns the public board, newest first
func (r *PostRepository) ListApproved(ctx context.Context) ([]*model.TuitionPost, error) {
	posts, err := r.queryMany(ctx, `SELECT `+postColumns+` FROM tuition_posts WHERE is_approved = true ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list approved posts: %w", err)
	}
	return posts, nil
}

// ListByOwner returns every post of the owner regardless of status
func (r *PostRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.TuitionPost, error) {
	posts, err := r.queryMany(ctx, `SELECT `+postColumns+` FROM tuition_posts WHERE user_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner posts: %w", err)
	}
	return posts, nil
}

// ListByApprovalStatus lists posts newest first; an empty status means all of them
func (r *PostRepository) ListByApprovalStatus(ctx context.Context, status model.ApprovalStatus) ([]*model.TuitionPost, error) {
	var (
		posts []*model.TuitionPost
		err   error
	)

	if status == "" {
		posts, err = r.queryMany(ctx, `SELECT `+postColumns+` FROM tuition_posts ORDER BY created_at DESC`)
	} else {
		posts, err = r.queryMany(ctx,
			`SELECT `+postColumns+` FROM tuition_posts WHERE approval_status = $1 ORDER BY created_at DESC`,
			status,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("list posts by status: %w", err)
	}
	return posts, nil
}

// Update overwrites the editable fields and the approval pair of an owned post
func (r *PostRepository) Update(ctx context.Context, p *model.TuitionPost) error {
	query := `
		UPDATE tuition_posts
		SET class_level = $1, group_name = $2, subject = $3, salary = $4, gender = $5,
			location = $6, requirement = $7, student_id_card_url = $8,
			is_approved = $9, approval_status = $10
		WHERE id = $11 AND user_id = $12
	`

	err := r.ExecOne(
		ctx, query,
		p.ClassLevel,
		p.Group,
		p.Subject,
		p.Salary,
		p.Gender,
		p.Location,
		p.Requirement,
		p.StudentIDCardURL,
		p.IsApproved,
		p.ApprovalStatus,
		p.ID,
		p.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	return nil
}

// SetApproval writes is_approved and approval_status together in one statement
func (r *PostRepository) SetApproval(ctx context.Context, id uuid.UUID, status model.ApprovalStatus) error {
	query := `
		UPDATE tuition_posts
		SET is_approved = $1, approval_status = $2
		WHERE id = $3
	`

	if err := r.ExecOne(ctx, query, status == model.ApprovalApproved, status, id); err != nil {
		return fmt.Errorf("update post approval: %w", err)
	}
	return nil
}

// MarkBooked records the accepted applicant on the post
func (r *PostRepository) MarkBooked(ctx context.Context, id, bookedBy uuid.UUID) error {
	if err := r.ExecOne(ctx, `UPDATE tuition_posts SET is_booked = true, booked_by = $1 WHERE id = $2`, bookedBy, id); err != nil {
		return fmt.Errorf("mark post booked: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ExecOne(ctx, `DELETE FROM tuition_posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Count counts posts; an empty status counts all of them
func (r *PostRepository) Count(ctx context.Context, status model.ApprovalStatus) (int, error) {
	var (
		count int
		err   error
	)
	if status == "" {
		count, err = r.Repository.Count(ctx, `SELECT COUNT(*) FROM tuition_posts`)
	} else {
		count, err = r.Repository.Count(ctx, `SELECT COUNT(*) FROM tuition_posts WHERE approval_status = $1`, status)
	}
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
