package service_test

import (
	"testing"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorRequestHistory(t *testing.T) {
	f := newFixture(t)
	student := f.account(t, model.RoleStudent, "Karim")
	tutor := f.account(t, model.RoleTutor, "Rahim")

	first, err := f.requests.SendRequest(f.ctx, student, tutor.ID, "Please teach me")
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, first.Status)

	pending, err := f.requests.HasPendingRequest(f.ctx, student.ID, tutor.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	_, err = f.requests.SendRequest(f.ctx, student, tutor.ID, "again")
	require.ErrorIs(t, err, service.ErrDuplicatePending)
	assert.Equal(t, "You have already sent a pending request to this tutor", err.Error())

	_, err = f.requests.SetRequestStatus(f.ctx, tutor, first.ID, model.RequestStatusRejected)
	require.NoError(t, err)

	second, err := f.requests.SendRequest(f.ctx, student, tutor.ID, "One more try")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = f.requests.SetRequestStatus(f.ctx, tutor, second.ID, model.RequestStatusAccepted)
	require.NoError(t, err)

	check, err := f.requests.CheckRequestStatus(f.ctx, student, tutor.ID)
	require.NoError(t, err)
	assert.True(t, check.HasRequested)
	require.NotNil(t, check.Status)
	assert.Equal(t, model.RequestStatusAccepted, *check.Status)

	history, err := f.requests.ListRequestsForStudent(f.ctx, student)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestCheckRequestStatusWithoutRequest(t *testing.T) {
	f := newFixture(t)
	student := f.account(t, model.RoleStudent, "Karim")

	check, err := f.requests.CheckRequestStatus(f.ctx, student, uuid.New())
	require.NoError(t, err)
	assert.False(t, check.HasRequested)
	assert.Nil(t, check.Status)
}

func TestSetRequestStatusAuthorization(t *testing.T) {
	f := newFixture(t)
	student := f.account(t, model.RoleStudent, "Karim")
	tutor := f.account(t, model.RoleTutor, "Rahim")
	admin := f.account(t, model.RoleAdmin, "Admin")
	req, err := f.requests.SendRequest(f.ctx, student, tutor.ID, "")
	require.NoError(t, err)

	_, err = f.requests.SetRequestStatus(f.ctx, student, req.ID, model.RequestStatusAccepted)
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = f.requests.SetRequestStatus(f.ctx, tutor, req.ID, "done")
	require.ErrorIs(t, err, service.ErrInvalidStatus)

	_, err = f.requests.SetRequestStatus(f.ctx, tutor, uuid.New(), model.RequestStatusAccepted)
	require.ErrorIs(t, err, service.ErrNotFound)

	updated, err := f.requests.SetRequestStatus(f.ctx, admin, req.ID, model.RequestStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusAccepted, updated.Status)
}

func TestListRequestsForTutorIncludesStudentContact(t *testing.T) {
	f := newFixture(t)
	student := f.account(t, model.RoleStudent, "Karim")
	tutor := f.account(t, model.RoleTutor, "Rahim")
	_, err := f.requests.SendRequest(f.ctx, student, tutor.ID, "hi")
	require.NoError(t, err)

	inbox, err := f.requests.ListRequestsForTutor(f.ctx, tutor)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.NotNil(t, inbox[0].Student)
	assert.Equal(t, "Karim", inbox[0].Student.FullName)
	assert.Equal(t, "Dhaka", inbox[0].Student.Address)
}

func TestListRequestsForStudentDefaults(t *testing.T) {
	f := newFixture(t)
	student := f.account(t, model.RoleStudent, "Karim")
	withProfile := f.account(t, model.RoleTutor, "Rahim")
	f.tutorProfile(t, withProfile)
	withoutProfile := f.account(t, model.RoleTutor, "Salma")
	ghost := uuid.New()

	for _, tutorID := range []uuid.UUID{withProfile.ID, withoutProfile.ID, ghost} {
		_, err := f.requests.SendRequest(f.ctx, student, tutorID, "")
		require.NoError(t, err)
	}

	sent, err := f.requests.ListRequestsForStudent(f.ctx, student)
	require.NoError(t, err)
	require.Len(t, sent, 3)

	cards := map[uuid.UUID]model.TutorCard{}
	for _, r := range sent {
		cards[r.TutorID] = r.Tutor
	}

	full := cards[withProfile.ID]
	assert.Equal(t, "Rahim", full.FirstName)
	assert.Equal(t, "Uddin", full.LastName)
	assert.Equal(t, "5.00", full.SSCResult)
	assert.Equal(t, "rahim@example.com", full.Email)

	partial := cards[withoutProfile.ID]
	assert.Equal(t, model.UnknownValue, partial.FirstName)
	assert.Equal(t, "", partial.LastName)
	assert.Equal(t, model.NotAvailable, partial.SSCResult)
	assert.Equal(t, "salma@example.com", partial.Email)

	missing := cards[ghost]
	assert.Equal(t, ghost, missing.UserID)
	assert.Equal(t, model.UnknownValue, missing.FirstName)
	assert.Equal(t, model.NotAvailable, missing.HSCResult)
	assert.Equal(t, model.NotAvailable, missing.Email)
	assert.Equal(t, model.NotAvailable, missing.Phone)
	assert.Equal(t, model.NotAvailable, missing.Address)
}
