package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/go-chi/chi/v5"
)

// statusParam maps the "all" path segment to an unfiltered listing.
func statusParam(r *http.Request) string {
	status := chi.URLParam(r, "status")
	if status == "all" {
		return ""
	}
	return status
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Admin.Stats(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{"stats": stats})
}

func (s *Server) handleListTutors(w http.ResponseWriter, r *http.Request) {
	status := model.VerificationStatus(statusParam(r))
	tutors, err := s.svc.Tutors.ListTutorsByStatus(r.Context(), actorFrom(r.Context()), status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d tutors found", len(tutors)), envelope{"tutors": tutors})
}

func (s *Server) handleVerifyTutor(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "tutorId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	status := model.VerificationStatus(req.Status)
	if err := s.svc.Tutors.SetVerification(r.Context(), actorFrom(r.Context()), profileID, status); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("Tutor %s successfully", status), nil)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Admin.ListUsers(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d users found", len(users)), envelope{"users": users})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Admin.DeleteUser(r.Context(), actorFrom(r.Context()), userID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "User deleted successfully", nil)
}

func (s *Server) handleSetUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req roleRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Admin.SetUserRole(r.Context(), actorFrom(r.Context()), userID, model.Role(req.Role)); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "User role updated successfully", nil)
}

func (s *Server) handleListPostsWithOwner(w http.ResponseWriter, r *http.Request) {
	posts, err := s.svc.Posts.ListPostsWithOwnerInfo(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d posts found", len(posts)), envelope{"posts": posts})
}

func (s *Server) handleListPostsByStatus(w http.ResponseWriter, r *http.Request) {
	status := model.ApprovalStatus(statusParam(r))
	posts, err := s.svc.Posts.ListPostsByStatus(r.Context(), actorFrom(r.Context()), status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d posts found", len(posts)), envelope{"posts": posts})
}

func (s *Server) handleAdminDeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Posts.AdminDeletePost(r.Context(), actorFrom(r.Context()), postID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Post deleted successfully", nil)
}

func (s *Server) handleApprovePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	status := model.ApprovalStatus(req.Status)
	if err := s.svc.Posts.SetApprovalStatus(r.Context(), actorFrom(r.Context()), postID, status); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("Post %s successfully", status), nil)
}
