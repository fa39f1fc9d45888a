package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/memstore"
	"github.com/Freeeeeet/tutorlink/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("connection refused")

type fakeIdentity struct {
	signUps []string
	err     error
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _ string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.signUps = append(f.signUps, email)
	return uuid.New(), nil
}

// failingAccounts fails every batch lookup.
type failingAccounts struct {
	service.AccountRepository
}

func (failingAccounts) GetByIDs(context.Context, []uuid.UUID) ([]*model.Account, error) {
	return nil, errStoreDown
}

// unbookablePosts fails MarkBooked.
type unbookablePosts struct {
	service.PostRepository
}

func (unbookablePosts) MarkBooked(context.Context, uuid.UUID, uuid.UUID) error {
	return errStoreDown
}

type fixture struct {
	ctx      context.Context
	store    *memstore.Store
	identity *fakeIdentity

	accounts     *service.AccountService
	posts        *service.PostService
	tutors       *service.TutorService
	applications *service.ApplicationService
	requests     *service.TutorRequestService
	admin        *service.AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	identity := &fakeIdentity{}
	logger := zap.NewNop()

	accounts := store.Accounts()
	tutors := store.TutorProfiles()
	posts := store.Posts()
	applications := store.Applications()
	requests := store.TutorRequests()

	return &fixture{
		ctx:          context.Background(),
		store:        store,
		identity:     identity,
		accounts:     service.NewAccountService(accounts, identity, logger),
		posts:        service.NewPostService(posts, accounts, logger),
		tutors:       service.NewTutorService(tutors, accounts, logger),
		applications: service.NewApplicationService(applications, posts, accounts, logger),
		requests:     service.NewTutorRequestService(requests, tutors, accounts, logger),
		admin:        service.NewAdminService(accounts, tutors, posts, applications, logger),
	}
}

// account stores a profile and returns the actor for it.
func (f *fixture) account(t *testing.T, role model.Role, name string) service.Actor {
	t.Helper()
	acc := &model.Account{
		FullName: name,
		Email:    strings.ToLower(name) + "@example.com",
		Phone:    "01700000000",
		Address:  "Dhaka",
		Role:     role,
	}
	require.NoError(t, f.store.Accounts().Create(f.ctx, acc))
	return service.Actor{ID: acc.ID, Role: acc.Role}
}

func (f *fixture) post(t *testing.T, owner service.Actor) *model.TuitionPost {
	t.Helper()
	post, err := f.posts.CreatePost(f.ctx, owner, samplePostFields())
	require.NoError(t, err)
	return post
}

func (f *fixture) tutorProfile(t *testing.T, tutor service.Actor) *model.TutorProfile {
	t.Helper()
	profile, err := f.tutors.ApplyAsTutor(f.ctx, tutor, sampleTutorDetails(), "https://cdn/inst.png", "https://cdn/nid.png")
	require.NoError(t, err)
	return profile
}

func samplePostFields() model.PostFields {
	return model.PostFields{
		ClassLevel:       "Class 8",
		Group:            "Science",
		Subject:          "Math",
		Salary:           "5000",
		Gender:           "Any",
		Location:         "Mirpur",
		Requirement:      "3 days a week",
		StudentIDCardURL: "https://cdn/student-id.png",
	}
}

func sampleTutorDetails() model.TutorDetails {
	return model.TutorDetails{
		FirstName:         "Rahim",
		LastName:          "Uddin",
		SSCResult:         "5.00",
		SSCDepartment:     "Science",
		HSCResult:         "5.00",
		HSCDepartment:     "Science",
		Bio:               "Physics tutor",
		ProfilePictureURL: "https://cdn/rahim.png",
	}
}

func storedPost(t *testing.T, f *fixture, id uuid.UUID) *model.TuitionPost {
	t.Helper()
	post, err := f.store.Posts().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, post)
	return post
}
