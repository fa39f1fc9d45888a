package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
)

func (s *Server) handleSendRequest(w http.ResponseWriter, r *http.Request) {
	var req sendRequestRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	// validated as a uuid by decode
	tutorID := uuid.MustParse(req.TutorID)
	sent, err := s.svc.Requests.SendRequest(r.Context(), actorFrom(r.Context()), tutorID, req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Request sent successfully!", envelope{"request": sent})
}

func (s *Server) handleListRequestsForTutor(w http.ResponseWriter, r *http.Request) {
	requests, err := s.svc.Requests.ListRequestsForTutor(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d requests found", len(requests)), envelope{"requests": requests})
}

func (s *Server) handleListRequestsForStudent(w http.ResponseWriter, r *http.Request) {
	requests, err := s.svc.Requests.ListRequestsForStudent(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d requests found", len(requests)), envelope{"requests": requests})
}

func (s *Server) handleCheckRequest(w http.ResponseWriter, r *http.Request) {
	tutorID, err := pathID(r, "tutorId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	check, err := s.svc.Requests.CheckRequestStatus(r.Context(), actorFrom(r.Context()), tutorID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{
		"hasRequested": check.HasRequested,
		"status":       check.Status,
	})
}

func (s *Server) handleSetRequestStatus(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.svc.Requests.SetRequestStatus(r.Context(), actorFrom(r.Context()), requestID, model.RequestStatus(req.Status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("Request %s successfully", updated.Status), envelope{"request": updated})
}
