package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/service"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	_, err := s.svc.Accounts.Register(r.Context(), service.Registration{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Role:     model.Role(req.Role),
		Address:  req.Address,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Check your email to verify account.", nil)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.svc.Accounts.GetProfile(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{"profile": profile})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := s.svc.Accounts.UpdateProfile(r.Context(), actorFrom(r.Context()), service.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Gender:   req.Gender,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Profile updated successfully!", nil)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Accounts.UpdateRole(r.Context(), actorFrom(r.Context()), model.Role(req.Role)); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Role updated successfully!", nil)
}

func (s *Server) handleUpdatePicture(w http.ResponseWriter, r *http.Request) {
	var req pictureRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Accounts.UpdatePicture(r.Context(), actorFrom(r.Context()), req.ProfilePictureURL); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Profile picture updated successfully!", nil)
}
