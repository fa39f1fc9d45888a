package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutorlink/internal/identity"
	"github.com/Freeeeeet/tutorlink/internal/metrics"
	"github.com/Freeeeeet/tutorlink/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Services bundles the lifecycle operations the HTTP surface exposes.
type Services struct {
	Accounts     *service.AccountService
	Posts        *service.PostService
	Tutors       *service.TutorService
	Applications *service.ApplicationService
	Requests     *service.TutorRequestService
	Admin        *service.AdminService
}

// TokenVerifier validates a bearer token and returns the account id it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, *identity.Claims, error)
}

type Server struct {
	svc         Services
	verifier    TokenVerifier
	logger      *zap.Logger
	validate    *validator.Validate
	corsOrigins []string
}

func NewServer(svc Services, verifier TokenVerifier, logger *zap.Logger, corsOrigins []string) *Server {
	return &Server{
		svc:         svc,
		verifier:    verifier,
		logger:      logger,
		validate:    newValidator(),
		corsOrigins: corsOrigins,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	r.Use(s.cors)
	r.Use(metrics.InstrumentHandler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Get("/profile/{userId}", s.handleGetProfile)
				r.Put("/update-profile", s.handleUpdateProfile)
				r.Put("/update-role", s.handleUpdateRole)
				r.Put("/update-profile-picture", s.handleUpdatePicture)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/all", s.handleListApprovedPosts)
			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Post("/create", s.handleCreatePost)
				r.Get("/my-posts", s.handleListMyPosts)
				r.Get("/edit/{postId}", s.handleGetOwnPost)
				r.Put("/update/{postId}", s.handleUpdatePost)
				r.Delete("/delete/{postId}", s.handleDeletePost)
				r.Post("/apply/{postId}", s.handleApply)
				r.Get("/applications", s.handleListIncomingApplications)
				r.Put("/applications/{applicationId}/status", s.handleSetApplicationStatus)
				r.Get("/my-applications", s.handleListMyApplications)
				r.Get("/check-application/{postId}", s.handleCheckApplication)
			})
		})

		r.Route("/tutors", func(r chi.Router) {
			r.Get("/all", s.handleListApprovedTutors)
			r.Get("/details/{tutorId}", s.handleTutorDetails)
			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Post("/apply", s.handleApplyAsTutor)
				r.Get("/my-profile", s.handleMyTutorProfile)
				r.Put("/update-profile", s.handleUpdateTutorProfile)
				r.Get("/admin/documents/{tutorId}", s.handleTutorDocuments)
				r.Get("/admin/all-with-documents", s.handleAllTutorDocuments)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(s.requireAdmin)
			r.Get("/stats", s.handleStats)
			r.Get("/tutors/all", s.handleListTutors)
			r.Get("/tutors/{status}", s.handleListTutors)
			r.Put("/tutors/verify/{tutorId}", s.handleVerifyTutor)
			r.Get("/users", s.handleListUsers)
			r.Delete("/users/{userId}", s.handleDeleteUser)
			r.Put("/users/{userId}/role", s.handleSetUserRole)
			r.Get("/posts", s.handleListPostsWithOwner)
			r.Get("/posts/all-status", s.handleListPostsWithOwner)
			r.Get("/posts/status/{status}", s.handleListPostsByStatus)
			r.Delete("/posts/{postId}", s.handleAdminDeletePost)
			r.Put("/posts/approve/{postId}", s.handleApprovePost)
		})

		r.Route("/tutor-requests", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/send", s.handleSendRequest)
			r.Get("/tutor", s.handleListRequestsForTutor)
			r.Get("/student", s.handleListRequestsForStudent)
			r.Get("/check/{tutorId}", s.handleCheckRequest)
			r.Put("/{requestId}/status", s.handleSetRequestStatus)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
