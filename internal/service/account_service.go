package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutorlink/internal/metrics"
	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registration is what a new user submits on sign-up.
type Registration struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Gender   string
	Role     model.Role
	Address  string
}

// ProfileUpdate is the self-editable part of an account.
type ProfileUpdate struct {
	FullName string
	Phone    string
	Address  string
	Gender   string
}

type AccountService struct {
	accounts AccountRepository
	identity IdentityProvider
	logger   *zap.Logger
}

func NewAccountService(accounts AccountRepository, identity IdentityProvider, logger *zap.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		identity: identity,
		logger:   logger,
	}
}

// Register creates credentials with the identity provider and the matching account profile.
func (s *AccountService) Register(ctx context.Context, reg Registration) (*model.Account, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	err := requirePresent(
		field{"email", reg.Email},
		field{"password", reg.Password},
		field{"full name", reg.FullName},
		field{"role", string(reg.Role)},
	)
	if err != nil {
		return nil, err
	}
	if reg.Role != model.RoleStudent && reg.Role != model.RoleTutor {
		return nil, newError(ErrValidation, "Role must be student or tutor")
	}

	existing, err := s.accounts.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, storeError("get account by email", err)
	}
	if existing != nil {
		return nil, newError(ErrEmailTaken, "This email is already registered. Please login.")
	}

	id, err := s.identity.SignUp(ctx, reg.Email, reg.Password)
	if err != nil {
		return nil, storeError("sign up", err)
	}

	acc := &model.Account{
		ID:       id,
		FullName: reg.FullName,
		Email:    reg.Email,
		Phone:    reg.Phone,
		Gender:   reg.Gender,
		Role:     reg.Role,
		Address:  reg.Address,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		s.logger.Error("Identity created but profile insert failed",
			zap.String("account_id", id.String()),
			zap.Error(err),
		)
		return nil, storeError("create account", err)
	}

	metrics.RecordTransition("account", string(acc.Role))
	s.logger.Info("Account registered",
		zap.String("account_id", acc.ID.String()),
		zap.String("role", string(acc.Role)),
	)

	return acc, nil
}

// GetProfile loads any account by id.
func (s *AccountService) GetProfile(ctx context.Context, actor Actor, accountID uuid.UUID) (*model.Account, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, storeError("get account", err)
	}
	if acc == nil {
		return nil, newError(ErrNotFound, "Profile not found")
	}
	return acc, nil
}

// Authenticate resolves a verified identity into an Actor carrying the account's role.
func (s *AccountService) Authenticate(ctx context.Context, accountID uuid.UUID) (Actor, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return Actor{}, storeError("get account", err)
	}
	if acc == nil {
		return Actor{}, newError(ErrUnauthenticated, "Account not found")
	}
	return Actor{ID: acc.ID, Role: acc.Role}, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, actor Actor, upd ProfileUpdate) error {
	if err := requireCaller(actor); err != nil {
		return err
	}
	acc := &model.Account{
		ID:       actor.ID,
		FullName: upd.FullName,
		Phone:    upd.Phone,
		Address:  upd.Address,
		Gender:   upd.Gender,
	}
	if err := s.accounts.UpdateDetails(ctx, acc); err != nil {
		return writeError("update account", err, "Profile not found")
	}
	s.logger.Info("Profile updated", zap.String("account_id", actor.ID.String()))
	return nil
}

// UpdateRole switches the caller between student and tutor. Admin is granted only by an admin.
func (s *AccountService) UpdateRole(ctx context.Context, actor Actor, role model.Role) error {
	if err := requireCaller(actor); err != nil {
		return err
	}
	if role != model.RoleStudent && role != model.RoleTutor {
		return newError(ErrValidation, "Role must be student or tutor")
	}
	if actor.IsAdmin() {
		return newError(ErrForbidden, "Admins cannot change their own role")
	}
	if err := s.accounts.UpdateRole(ctx, actor.ID, role); err != nil {
		return writeError("update role", err, "Profile not found")
	}
	s.logger.Info("Role updated",
		zap.String("account_id", actor.ID.String()),
		zap.String("role", string(role)),
	)
	return nil
}

func (s *AccountService) UpdatePicture(ctx context.Context, actor Actor, url string) error {
	if err := requireCaller(actor); err != nil {
		return err
	}
	if err := requirePresent(field{"profile picture", url}); err != nil {
		return err
	}
	if err := s.accounts.UpdatePicture(ctx, actor.ID, url); err != nil {
		return writeError("update profile picture", err, "Profile not found")
	}
	return nil
}
