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

const tutorProfileColumns = `
	id, user_id, first_name, last_name,
	ssc_result, ssc_department, hsc_result, hsc_department,
	honours_result, honours_institution, honours_department,
	masters_result, masters_institution, masters_department,
	bio, profile_picture_url, institution_id_url, nid_url,
	verification_status, created_at`

type TutorProfileRepository struct {
	*base.Repository
}

func NewTutorProfileRepository(pool *pgxpool.Pool) *TutorProfileRepository {
	return &TutorProfileRepository{Repository: base.NewRepository(pool)}
}

func scanTutorProfile(row pgx.Row) (*model.TutorProfile, error) {
	var t model.TutorProfile
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.FirstName,
		&t.LastName,
		&t.SSCResult,
		&t.SSCDepartment,
		&t.HSCResult,
		&t.HSCDepartment,
		&t.HonoursResult,
		&t.HonoursInstitution,
		&t.HonoursDepartment,
		&t.MastersResult,
		&t.MastersInstitution,
		&t.MastersDepartment,
		&t.Bio,
		&t.ProfilePictureURL,
		&t.InstitutionIDURL,
		&t.NIDURL,
		&t.VerificationStatus,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TutorProfileRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*model.TutorProfile, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.TutorProfile, error) {
		return scanTutorProfile(row)
	})
}

func (r *TutorProfileRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*model.TutorProfile, error) {
	t, err := scanTutorProfile(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Create inserts the application as a new tutor profile
func (r *TutorProfileRepository) Create(ctx context.Context, t *model.TutorProfile) error {
	query := `
		INSERT INTO tutor_profiles (
			user_id, first_name, last_name,
			ssc_result, ssc_department, hsc_result, hsc_department,
			honours_result, honours_institution, honours_department,
			masters_result, masters_institution, masters_department,
			bio, profile_picture_url, institution_id_url, nid_url,
			verification_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		t.UserID,
		t.FirstName,
		t.LastName,
		t.SSCResult,
		t.SSCDepartment,
		t.HSCResult,
		t.HSCDepartment,
		t.HonoursResult,
		t.HonoursInstitution,
		t.HonoursDepartment,
		t.MastersResult,
		t.MastersInstitution,
		t.MastersDepartment,
		t.Bio,
		t.ProfilePictureURL,
		t.InstitutionIDURL,
		t.NIDURL,
		t.VerificationStatus,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		return fmt.Errorf("create tutor profile: %w", err)
	}

	return nil
}

func (r *TutorProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorProfile, error) {
	t, err := r.queryOne(ctx, `SELECT `+tutorProfileColumns+` FROM tutor_profiles WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get tutor profile: %w", err)
	}
	return t, nil
}

func (r *TutorProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.TutorProfile, error) {
	query := `SELECT ` + tutorProfileColumns + ` FROM tutor_profiles WHERE user_id = $1 ORDER BY created_at LIMIT 1`

	t, err := r.queryOne(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("get tutor profile by account: %w", err)
	}
	return t, nil
}

// GetByAccountIDs fetches the profiles of several tutor accounts at once
func (r *TutorProfileRepository) GetByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]*model.TutorProfile, error) {
	if len(accountIDs) == 0 {
		return []*model.TutorProfile{}, nil
	}

	profiles, err := r.queryMany(ctx, `SELECT `+tutorProfileColumns+` FROM tutor_profiles WHERE user_id = ANY($1)`, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("get tutor profiles by accounts: %w", err)
	}
	return profiles, nil
}

// ExistsForAccount checks whether the account has already applied
func (r *TutorProfileRepository) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var exists bool
	err := r.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tutor_profiles WHERE user_id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tutor profile exists: %w", err)
	}
	return exists, nil
}

// ListByStatus returns profiles newest first; an empty status means every status
func (r *TutorProfileRepository) ListByStatus(ctx context.Context, status model.VerificationStatus) ([]*model.TutorProfile, error) {
	var (
		profiles []*model.TutorProfile
		err      error
	)

	if status == "" {
		profiles, err = r.queryMany(ctx, `SELECT `+tutorProfileColumns+` FROM tutor_profiles ORDER BY created_at DESC`)
	} else {
		profiles, err = r.queryMany(ctx,
			`SELECT `+tutorProfileColumns+` FROM tutor_profiles WHERE verification_status = $1 ORDER BY created_at DESC`,
			status,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("list tutor profiles: %w", err)
	}
	return profiles, nil
}

// UpdateDetails overwrites the editable fields; the picture is kept when none is given.
// verification_status is never touched here.
func (r *TutorProfileRepository) UpdateDetails(ctx context.Context, accountID uuid.UUID, d *model.TutorDetails) error {
	query := `
		UPDATE tutor_profiles
		SET first_name = $1, last_name = $2,
			ssc_result = $3, ssc_department = $4,
			hsc_result = $5, hsc_department = $6,
			honours_result = $7, honours_institution = $8, honours_department = $9,
			masters_result = $10, masters_institution = $11, masters_department = $12,
			bio = $13,
			profile_picture_url = COALESCE(NULLIF($14, ''), profile_picture_url)
		WHERE user_id = $15
	`

	err := r.ExecOne(
		ctx, query,
		d.FirstName,
		d.LastName,
		d.SSCResult,
		d.SSCDepartment,
		d.HSCResult,
		d.HSCDepartment,
		d.HonoursResult,
		d.HonoursInstitution,
		d.HonoursDepartment,
		d.MastersResult,
		d.MastersInstitution,
		d.MastersDepartment,
		d.Bio,
		d.ProfilePictureURL,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("update tutor profile: %w", err)
	}

	return nil
}

func (r *TutorProfileRepository) SetVerificationStatus(ctx context.Context, id uuid.UUID, status model.VerificationStatus) error {
	err := r.ExecOne(ctx, `UPDATE tutor_profiles SET verification_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update verification status: %w", err)
	}
	return nil
}

// Count counts profiles; an empty status counts all of them
func (r *TutorProfileRepository) Count(ctx context.Context, status model.VerificationStatus) (int, error) {
	var (
		count int
		err   error
	)
	if status == "" {
		count, err = r.Repository.Count(ctx, `SELECT COUNT(*) FROM tutor_profiles`)
	} else {
		count, err = r.Repository.Count(ctx, `SELECT COUNT(*) FROM tutor_profiles WHERE verification_status = $1`, status)
	}
	if err != nil {
		return 0, fmt.Errorf("count tutor profiles: %w", err)
	}
	return count, nil
}
