package service_test

import (
	"testing"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAsTutorOnce(t *testing.T) {
	f := newFixture(t)
	tutor := f.account(t, model.RoleTutor, "Rahim")

	profile := f.tutorProfile(t, tutor)
	assert.Equal(t, tutor.ID, profile.UserID)
	assert.Equal(t, model.VerificationPending, profile.VerificationStatus)
	assert.Equal(t, "https://cdn/nid.png", profile.NIDURL)

	has, err := f.tutors.HasTutorProfile(f.ctx, tutor.ID)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = f.tutors.ApplyAsTutor(f.ctx, tutor, sampleTutorDetails(), "", "")
	require.ErrorIs(t, err, service.ErrAlreadyApplied)
	assert.Equal(t, "You have already applied to become a tutor", err.Error())
}

func TestUpdateTutorProfileKeepsVerification(t *testing.T) {
	f := newFixture(t)
	tutor := f.account(t, model.RoleTutor, "Rahim")
	admin := f.account(t, model.RoleAdmin, "Admin")
	profile := f.tutorProfile(t, tutor)
	require.NoError(t, f.tutors.SetVerification(f.ctx, admin, profile.ID, model.VerificationApproved))

	details := sampleTutorDetails()
	details.Bio = "Now teaching chemistry too"
	details.ProfilePictureURL = ""
	require.NoError(t, f.tutors.UpdateTutorProfile(f.ctx, tutor, details))

	mine, err := f.tutors.MyTutorProfile(f.ctx, tutor)
	require.NoError(t, err)
	assert.Equal(t, model.VerificationApproved, mine.VerificationStatus)
	assert.Equal(t, "Now teaching chemistry too", mine.Bio)
	assert.Equal(t, "https://cdn/rahim.png", mine.ProfilePictureURL)
}

func TestUpdateTutorProfileWithoutProfile(t *testing.T) {
	f := newFixture(t)
	student := f.account(t, model.RoleStudent, "Karim")

	err := f.tutors.UpdateTutorProfile(f.ctx, student, sampleTutorDetails())
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.tutors.MyTutorProfile(f.ctx, student)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSetVerification(t *testing.T) {
	f := newFixture(t)
	tutor := f.account(t, model.RoleTutor, "Rahim")
	admin := f.account(t, model.RoleAdmin, "Admin")
	profile := f.tutorProfile(t, tutor)

	require.ErrorIs(t, f.tutors.SetVerification(f.ctx, tutor, profile.ID, model.VerificationApproved), service.ErrForbidden)
	require.ErrorIs(t, f.tutors.SetVerification(f.ctx, admin, profile.ID, "maybe"), service.ErrInvalidStatus)
	require.ErrorIs(t, f.tutors.SetVerification(f.ctx, admin, uuid.New(), model.VerificationApproved), service.ErrNotFound)

	require.NoError(t, f.tutors.SetVerification(f.ctx, admin, profile.ID, model.VerificationRejected))
	require.NoError(t, f.tutors.SetVerification(f.ctx, admin, profile.ID, model.VerificationApproved))

	details, err := f.tutors.TutorDetails(f.ctx, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VerificationApproved, details.VerificationStatus)
	assert.Equal(t, "Rahim", details.FullName)
	assert.Equal(t, "Dhaka", details.Address)
}

func TestTutorDirectoryListsApprovedOnly(t *testing.T) {
	f := newFixture(t)
	admin := f.account(t, model.RoleAdmin, "Admin")
	approved := f.tutorProfile(t, f.account(t, model.RoleTutor, "Rahim"))
	f.tutorProfile(t, f.account(t, model.RoleTutor, "Salma"))
	require.NoError(t, f.tutors.SetVerification(f.ctx, admin, approved.ID, model.VerificationApproved))

	directory, err := f.tutors.ListApprovedTutors(f.ctx)
	require.NoError(t, err)
	require.Len(t, directory, 1)
	assert.Equal(t, approved.ID, directory[0].ID)
	assert.Equal(t, "rahim@example.com", directory[0].Email)

	pending, err := f.tutors.ListTutorsByStatus(f.ctx, admin, model.VerificationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Salma", pending[0].FullName)

	all, err := f.tutors.ListTutorsByStatus(f.ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.tutors.ListTutorsByStatus(f.ctx, admin, "unknown")
	require.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestTutorDetailsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.tutors.TutorDetails(f.ctx, uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, "Tutor not found", err.Error())
}

func TestTutorDocuments(t *testing.T) {
	f := newFixture(t)
	admin := f.account(t, model.RoleAdmin, "Admin")
	tutor := f.account(t, model.RoleTutor, "Rahim")
	profile := f.tutorProfile(t, tutor)

	docs, err := f.tutors.GetTutorDocuments(f.ctx, admin, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", docs.TutorName)
	assert.Equal(t, "Rahim", docs.FullName)
	assert.Equal(t, "https://cdn/inst.png", docs.InstitutionIDURL)
	assert.Equal(t, "https://cdn/nid.png", docs.NIDURL)
	assert.Equal(t, model.VerificationPending, docs.VerificationStatus)

	_, err = f.tutors.GetTutorDocuments(f.ctx, tutor, profile.ID)
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = f.tutors.GetTutorDocuments(f.ctx, admin, uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)

	orphan := &model.TutorProfile{UserID: uuid.New(), TutorDetails: sampleTutorDetails()}
	require.NoError(t, f.store.TutorProfiles().Create(f.ctx, orphan))

	all, err := f.tutors.ListAllTutorsWithDocuments(f.ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, orphan.ID, all[0].ID)
	assert.Equal(t, model.UnknownValue, all[0].Email)
	assert.Equal(t, profile.ID, all[1].ID)
}
