package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Freeeeeet/tutorlink/internal/model"
)

func (req postRequest) fields() model.PostFields {
	return model.PostFields{
		ClassLevel:       req.ClassLevel,
		Group:            req.Group,
		Subject:          req.Subject,
		Salary:           req.Salary,
		Gender:           req.Gender,
		Location:         req.Location,
		Requirement:      req.Requirement,
		StudentIDCardURL: req.StudentIDCardURL,
	}
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	post, err := s.svc.Posts.CreatePost(r.Context(), actorFrom(r.Context()), req.fields())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Post submitted for admin approval!", envelope{"post": post})
}

func (s *Server) handleListApprovedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.svc.Posts.ListApprovedPosts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d posts found", len(posts)), envelope{"posts": posts})
}

func (s *Server) handleListMyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.svc.Posts.ListOwnerPosts(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d posts found for user", len(posts)), envelope{"posts": posts})
}

func (s *Server) handleGetOwnPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	post, err := s.svc.Posts.GetOwnPost(r.Context(), actorFrom(r.Context()), postID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{"post": post})
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req postRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.svc.Posts.UpdatePost(r.Context(), actorFrom(r.Context()), postID, req.fields()); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Post updated successfully and sent for admin approval!", nil)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Posts.DeletePost(r.Context(), actorFrom(r.Context()), postID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Post deleted successfully!", nil)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req applyRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.svc.Applications.Apply(r.Context(), actorFrom(r.Context()), postID, req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Application submitted successfully!", envelope{"application": app})
}

func (s *Server) handleListIncomingApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.svc.Applications.ListApplicationsForOwner(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d applications found", len(apps)), envelope{"applications": apps})
}

func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.svc.Applications.ListApplicationsByApplicant(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d applications found", len(apps)), envelope{"applications": apps})
}

func (s *Server) handleSetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	appID, err := pathID(r, "applicationId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.svc.Applications.SetApplicationStatus(r.Context(), actorFrom(r.Context()), appID, model.ApplicationStatus(req.Status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("Application %s successfully", app.Status), envelope{"application": app})
}

func (s *Server) handleCheckApplication(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	check, err := s.svc.Applications.CheckApplied(r.Context(), actorFrom(r.Context()), postID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{
		"hasApplied":        check.HasApplied,
		"applicationStatus": check.Status,
	})
}
