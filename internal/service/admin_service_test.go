package service_test

import (
	"testing"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	f := newFixture(t)
	admin := f.account(t, model.RoleAdmin, "Admin")
	student := f.account(t, model.RoleStudent, "Karim")
	rahim := f.account(t, model.RoleTutor, "Rahim")
	salma := f.account(t, model.RoleTutor, "Salma")

	approvedTutor := f.tutorProfile(t, rahim)
	f.tutorProfile(t, salma)
	require.NoError(t, f.tutors.SetVerification(f.ctx, admin, approvedTutor.ID, model.VerificationApproved))

	approvedPost := f.post(t, student)
	pendingPost := f.post(t, student)
	require.NoError(t, f.posts.SetApprovalStatus(f.ctx, admin, approvedPost.ID, model.ApprovalApproved))
	_, err := f.applications.Apply(f.ctx, rahim, pendingPost.ID, "")
	require.NoError(t, err)

	stats, err := f.admin.Stats(f.ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{
		TotalUsers:        4,
		TotalTutors:       2,
		PendingTutors:     1,
		TotalPosts:        2,
		TotalApplications: 1,
		PendingPosts:      1,
	}, *stats)

	_, err = f.admin.Stats(f.ctx, student)
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	admin := f.account(t, model.RoleAdmin, "Admin")
	student := f.account(t, model.RoleStudent, "Karim")
	tutor := f.account(t, model.RoleTutor, "Rahim")
	post := f.post(t, student)
	_, err := f.applications.Apply(f.ctx, tutor, post.ID, "")
	require.NoError(t, err)
	_, err = f.requests.SendRequest(f.ctx, student, tutor.ID, "")
	require.NoError(t, err)

	require.NoError(t, f.admin.DeleteUser(f.ctx, admin, student.ID))

	users, err := f.admin.ListUsers(f.ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	stats, err := f.admin.Stats(f.ctx, admin)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPosts)
	assert.Zero(t, stats.TotalApplications)

	inbox, err := f.requests.ListRequestsForTutor(f.ctx, tutor)
	require.NoError(t, err)
	assert.Empty(t, inbox)

	require.ErrorIs(t, f.admin.DeleteUser(f.ctx, admin, student.ID), service.ErrNotFound)
}

func TestSetUserRole(t *testing.T) {
	f := newFixture(t)
	admin := f.account(t, model.RoleAdmin, "Admin")
	student := f.account(t, model.RoleStudent, "Karim")

	require.NoError(t, f.admin.SetUserRole(f.ctx, admin, student.ID, model.RoleAdmin))
	acc, err := f.store.Accounts().GetByID(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, acc.Role)

	require.ErrorIs(t, f.admin.SetUserRole(f.ctx, admin, student.ID, "owner"), service.ErrValidation)
	require.ErrorIs(t, f.admin.SetUserRole(f.ctx, admin, uuid.New(), model.RoleTutor), service.ErrNotFound)
	require.ErrorIs(t, f.admin.SetUserRole(f.ctx, service.Actor{ID: student.ID, Role: model.RoleStudent}, student.ID, model.RoleTutor), service.ErrForbidden)
}
