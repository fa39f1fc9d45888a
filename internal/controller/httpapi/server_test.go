package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutorlink/internal/controller/httpapi"
	"github.com/Freeeeeet/tutorlink/internal/identity"
	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/memstore"
	"github.com/Freeeeeet/tutorlink/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-jwt-secret"

type stubIdentity struct{}

func (stubIdentity) SignUp(context.Context, string, string) (uuid.UUID, error) {
	return uuid.New(), nil
}

type testServer struct {
	handler  http.Handler
	store    *memstore.Store
	verifier *identity.Verifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memstore.New()
	logger := zap.NewNop()
	verifier := identity.NewVerifier(testSecret)

	svc := httpapi.Services{
		Accounts:     service.NewAccountService(store.Accounts(), stubIdentity{}, logger),
		Posts:        service.NewPostService(store.Posts(), store.Accounts(), logger),
		Tutors:       service.NewTutorService(store.TutorProfiles(), store.Accounts(), logger),
		Applications: service.NewApplicationService(store.Applications(), store.Posts(), store.Accounts(), logger),
		Requests:     service.NewTutorRequestService(store.TutorRequests(), store.TutorProfiles(), store.Accounts(), logger),
		Admin:        service.NewAdminService(store.Accounts(), store.TutorProfiles(), store.Posts(), store.Applications(), logger),
	}

	return &testServer{
		handler:  httpapi.NewServer(svc, verifier, logger, []string{"https://app.example.com"}).Router(),
		store:    store,
		verifier: verifier,
	}
}

// account stores an account and returns it with a valid access token.
func (ts *testServer) account(t *testing.T, role model.Role, name string) (*model.Account, string) {
	t.Helper()

	acc := &model.Account{
		FullName: name,
		Email:    strings.ToLower(name) + "@example.com",
		Phone:    "01700000000",
		Role:     role,
		Address:  "Dhaka",
	}
	require.NoError(t, ts.store.Accounts().Create(context.Background(), acc))

	token, err := ts.verifier.Sign(&identity.Claims{
		Email: acc.Email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return acc, token
}

type response struct {
	status int
	body   map[string]interface{}
}

func (r response) message() string {
	msg, _ := r.body["message"].(string)
	return msg
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload interface{}) response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	res := response{status: rec.Code}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.body))
	}
	return res
}

func postPayload() map[string]string {
	return map[string]string{
		"classLevel":       "Class 9",
		"group":            "Science",
		"subject":          "Physics",
		"salary":           "5000",
		"gender":           "any",
		"location":         "Mirpur",
		"requirement":      "3 days a week",
		"studentIdCardUrl": "https://cdn/card.png",
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ok", res.body["status"])
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, false, res.body["success"])
	assert.Equal(t, "Route not found", res.message())
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)
	payload := map[string]string{
		"fullName": "Ana Karim",
		"email":    "ana@example.com",
		"password": "secret123",
		"role":     "student",
	}

	res := ts.do(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, true, res.body["success"])
	assert.Equal(t, "Check your email to verify account.", res.message())

	acc, err := ts.store.Accounts().GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, model.RoleStudent, acc.Role)

	res = ts.do(t, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "This email is already registered. Please login.", res.message())
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Contains(t, res.message(), "Missing required fields")
	assert.Contains(t, res.message(), "fullName")

	res = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Ana",
		"email":    "not-an-email",
		"password": "x",
		"role":     "student",
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid fields: email", res.message())

	res = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Ana",
		"email":    "ana@example.com",
		"password": "x",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodGet, "/api/posts/my-posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Authentication required", res.message())

	res = ts.do(t, http.MethodGet, "/api/posts/my-posts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Invalid or expired token", res.message())

	orphan, err := ts.verifier.Sign(&identity.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	res = ts.do(t, http.MethodGet, "/api/posts/my-posts", orphan, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	_, student := ts.account(t, model.RoleStudent, "Sami")
	_, admin := ts.account(t, model.RoleAdmin, "Root")

	res := ts.do(t, http.MethodGet, "/api/admin/stats", student, nil)
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Admin access required", res.message())

	res = ts.do(t, http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, res.status)
	stats, ok := res.body["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), stats["totalUsers"])
}

func TestPostLifecycle(t *testing.T) {
	ts := newTestServer(t)
	owner, student := ts.account(t, model.RoleStudent, "Sami")
	tutorAcc, tutor := ts.account(t, model.RoleTutor, "Rahim")
	_, admin := ts.account(t, model.RoleAdmin, "Root")

	res := ts.do(t, http.MethodPost, "/api/posts/create", student, postPayload())
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Post submitted for admin approval!", res.message())
	post := res.body["post"].(map[string]interface{})
	assert.Equal(t, "pending", post["approval_status"])
	assert.Equal(t, false, post["is_approved"])
	postID := post["id"].(string)

	res = ts.do(t, http.MethodGet, "/api/posts/all", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "0 posts found", res.message())

	res = ts.do(t, http.MethodPut, "/api/admin/posts/approve/"+postID, admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Post approved successfully", res.message())

	res = ts.do(t, http.MethodGet, "/api/posts/all", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.body["posts"], 1)

	res = ts.do(t, http.MethodPost, "/api/posts/apply/"+postID, tutor, map[string]string{"message": "I can help"})
	require.Equal(t, http.StatusOK, res.status)

	res = ts.do(t, http.MethodPost, "/api/posts/apply/"+postID, tutor, map[string]string{"message": "again"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "You have already applied to this post", res.message())

	res = ts.do(t, http.MethodGet, "/api/posts/check-application/"+postID, tutor, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, true, res.body["hasApplied"])
	assert.Equal(t, "pending", res.body["applicationStatus"])

	res = ts.do(t, http.MethodGet, "/api/posts/applications", student, nil)
	require.Equal(t, http.StatusOK, res.status)
	apps := res.body["applications"].([]interface{})
	require.Len(t, apps, 1)
	app := apps[0].(map[string]interface{})
	applicant := app["applicant"].(map[string]interface{})
	assert.Equal(t, "Rahim", applicant["full_name"])
	appID := app["id"].(string)

	res = ts.do(t, http.MethodPut, "/api/posts/applications/"+appID+"/status", tutor, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, res.status)

	res = ts.do(t, http.MethodPut, "/api/posts/applications/"+appID+"/status", student, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Application accepted successfully", res.message())

	stored, err := ts.store.Posts().GetByID(context.Background(), uuid.MustParse(postID))
	require.NoError(t, err)
	assert.True(t, stored.IsBooked)
	require.NotNil(t, stored.BookedBy)
	assert.Equal(t, tutorAcc.ID, *stored.BookedBy)
	assert.Equal(t, owner.ID, stored.OwnerID)
}

func TestUpdatePost_ResetsApproval(t *testing.T) {
	ts := newTestServer(t)
	_, student := ts.account(t, model.RoleStudent, "Sami")
	_, other := ts.account(t, model.RoleStudent, "Nadia")
	_, admin := ts.account(t, model.RoleAdmin, "Root")

	res := ts.do(t, http.MethodPost, "/api/posts/create", student, postPayload())
	require.Equal(t, http.StatusOK, res.status)
	postID := res.body["post"].(map[string]interface{})["id"].(string)

	res = ts.do(t, http.MethodPut, "/api/admin/posts/approve/"+postID, admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, res.status)

	res = ts.do(t, http.MethodPut, "/api/posts/update/"+postID, other, postPayload())
	assert.Equal(t, http.StatusForbidden, res.status)

	res = ts.do(t, http.MethodPut, "/api/posts/update/"+postID, student, postPayload())
	require.Equal(t, http.StatusOK, res.status)

	stored, err := ts.store.Posts().GetByID(context.Background(), uuid.MustParse(postID))
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, stored.ApprovalStatus)
	assert.False(t, stored.IsApproved)
}

func TestInvalidPathID(t *testing.T) {
	ts := newTestServer(t)
	_, student := ts.account(t, model.RoleStudent, "Sami")

	res := ts.do(t, http.MethodGet, "/api/posts/edit/not-a-uuid", student, nil)

	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid postId", res.message())
}

func TestTutorRequestFlow(t *testing.T) {
	ts := newTestServer(t)
	_, student := ts.account(t, model.RoleStudent, "Sami")
	tutorAcc, tutor := ts.account(t, model.RoleTutor, "Rahim")

	res := ts.do(t, http.MethodPost, "/api/tutors/apply", tutor, map[string]string{
		"firstName":        "Rahim",
		"lastName":         "Uddin",
		"sscResult":        "5.00",
		"institutionIdUrl": "https://cdn/id.png",
		"nidUrl":           "https://cdn/nid.png",
	})
	require.Equal(t, http.StatusOK, res.status)

	send := map[string]string{"tutorId": tutorAcc.ID.String(), "message": "Physics please"}
	res = ts.do(t, http.MethodPost, "/api/tutor-requests/send", student, send)
	require.Equal(t, http.StatusOK, res.status)
	requestID := res.body["request"].(map[string]interface{})["id"].(string)

	res = ts.do(t, http.MethodPost, "/api/tutor-requests/send", student, send)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "You have already sent a pending request to this tutor", res.message())

	res = ts.do(t, http.MethodGet, "/api/tutor-requests/check/"+tutorAcc.ID.String(), student, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, true, res.body["hasRequested"])
	assert.Equal(t, "pending", res.body["status"])

	res = ts.do(t, http.MethodGet, "/api/tutor-requests/student", student, nil)
	require.Equal(t, http.StatusOK, res.status)
	reqs := res.body["requests"].([]interface{})
	require.Len(t, reqs, 1)
	card := reqs[0].(map[string]interface{})["tutor"].(map[string]interface{})
	assert.Equal(t, "Rahim", card["first_name"])
	assert.Equal(t, "5.00", card["ssc_result"])
	assert.Equal(t, "N/A", card["hsc_result"])

	res = ts.do(t, http.MethodPut, "/api/tutor-requests/"+requestID+"/status", student, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, res.status)

	res = ts.do(t, http.MethodPut, "/api/tutor-requests/"+requestID+"/status", tutor, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Request accepted successfully", res.message())

	res = ts.do(t, http.MethodGet, "/api/tutor-requests/check/"+tutorAcc.ID.String(), student, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "accepted", res.body["status"])
}

func TestSendRequest_InvalidTutorID(t *testing.T) {
	ts := newTestServer(t)
	_, student := ts.account(t, model.RoleStudent, "Sami")

	res := ts.do(t, http.MethodPost, "/api/tutor-requests/send", student, map[string]string{"tutorId": "abc"})

	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid fields: tutorId", res.message())
}

func TestTutorVerification(t *testing.T) {
	ts := newTestServer(t)
	tutorAcc, tutor := ts.account(t, model.RoleTutor, "Rahim")
	_, admin := ts.account(t, model.RoleAdmin, "Root")

	res := ts.do(t, http.MethodPost, "/api/tutors/apply", tutor, map[string]string{
		"firstName":        "Rahim",
		"lastName":         "Uddin",
		"institutionIdUrl": "https://cdn/id.png",
		"nidUrl":           "https://cdn/nid.png",
	})
	require.Equal(t, http.StatusOK, res.status)
	profileID := res.body["tutorProfile"].(map[string]interface{})["id"].(string)

	res = ts.do(t, http.MethodGet, "/api/tutors/all", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.body["tutors"], 0)

	res = ts.do(t, http.MethodGet, "/api/admin/tutors/pending", admin, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.body["tutors"], 1)

	res = ts.do(t, http.MethodPut, "/api/admin/tutors/verify/"+profileID, admin, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = ts.do(t, http.MethodPut, "/api/admin/tutors/verify/"+profileID, admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Tutor approved successfully", res.message())

	res = ts.do(t, http.MethodGet, "/api/tutors/details/"+tutorAcc.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, res.status)
	detail := res.body["tutor"].(map[string]interface{})
	assert.Equal(t, "rahim@example.com", detail["email"])
	assert.Equal(t, "approved", detail["verification_status"])

	res = ts.do(t, http.MethodGet, "/api/tutors/admin/documents/"+profileID, tutor, nil)
	assert.Equal(t, http.StatusForbidden, res.status)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/posts/all", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/posts/all", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
