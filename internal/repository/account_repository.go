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

const accountColumns = `id, full_name, email, phone, gender, role, address, profile_picture_url, created_at`

type AccountRepository struct {
	*base.Repository
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{Repository: base.NewRepository(pool)}
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var acc model.Account
	err := row.Scan(
		&acc.ID,
		&acc.FullName,
		&acc.Email,
		&acc.Phone,
		&acc.Gender,
		&acc.Role,
		&acc.Address,
		&acc.ProfilePictureURL,
		&acc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func collectAccounts(rows pgx.Rows) ([]*model.Account, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Account, error) {
		return scanAccount(row)
	})
}

// Create inserts a profile under the id issued by the identity provider
func (r *AccountRepository) Create(ctx context.Context, acc *model.Account) error {
	query := `
		INSERT INTO profiles (id, full_name, email, phone, gender, role, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		acc.ID,
		acc.FullName,
		acc.Email,
		acc.Phone,
		acc.Gender,
		acc.Role,
		acc.Address,
	).Scan(&acc.CreatedAt)

	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM profiles WHERE id = $1`

	acc, err := scanAccount(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}

	return acc, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM profiles WHERE email = $1 LIMIT 1`

	acc, err := scanAccount(r.QueryRow(ctx, query, email))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by email: %w", err)
	}

	return acc, nil
}

// GetByIDs fetches a batch of profiles in one round trip; unknown ids are simply absent
func (r *AccountRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Account, error) {
	if len(ids) == 0 {
		return []*model.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM profiles WHERE id = ANY($1)`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get profiles by ids: %w", err)
	}

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}

	return accounts, nil
}

// List returns every profile, unordered as in the admin screen
func (r *AccountRepository) List(ctx context.Context) ([]*model.Account, error) {
	rows, err := r.Query(ctx, `SELECT `+accountColumns+` FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}

	return accounts, nil
}

// UpdateDetails overwrites the self-editable contact fields
func (r *AccountRepository) UpdateDetails(ctx context.Context, acc *model.Account) error {
	query := `
		UPDATE profiles
		SET full_name = $1, phone = $2, address = $3, gender = $4
		WHERE id = $5
	`

	if err := r.ExecOne(ctx, query, acc.FullName, acc.Phone, acc.Address, acc.Gender, acc.ID); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	if err := r.ExecOne(ctx, `UPDATE profiles SET role = $1 WHERE id = $2`, role, id); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdatePicture(ctx context.Context, id uuid.UUID, url string) error {
	if err := r.ExecOne(ctx, `UPDATE profiles SET profile_picture_url = $1 WHERE id = $2`, url, id); err != nil {
		return fmt.Errorf("update profile picture: %w", err)
	}
	return nil
}

// Delete removes the profile; owned rows go with it through ON DELETE CASCADE
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ExecOne(ctx, `DELETE FROM profiles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	count, err := r.Repository.Count(ctx, `SELECT COUNT(*) FROM profiles`)
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return count, nil
}
