package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Freeeeeet/tutorlink/internal/model"
)

func (req tutorDetailsRequest) details() model.TutorDetails {
	return model.TutorDetails{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		SSCResult:          req.SSCResult,
		SSCDepartment:      req.SSCDepartment,
		HSCResult:          req.HSCResult,
		HSCDepartment:      req.HSCDepartment,
		HonoursResult:      req.HonoursResult,
		HonoursInstitution: req.HonoursInstitution,
		HonoursDepartment:  req.HonoursDepartment,
		MastersResult:      req.MastersResult,
		MastersInstitution: req.MastersInstitution,
		MastersDepartment:  req.MastersDepartment,
		Bio:                req.Bio,
		ProfilePictureURL:  req.ProfilePicURL,
	}
}

func (s *Server) handleApplyAsTutor(w http.ResponseWriter, r *http.Request) {
	var req tutorApplicationRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.svc.Tutors.ApplyAsTutor(r.Context(), actorFrom(r.Context()), req.details(), req.InstitutionIDURL, req.NIDURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Tutor application submitted successfully! Waiting for admin approval.", envelope{"tutorProfile": profile})
}

func (s *Server) handleListApprovedTutors(w http.ResponseWriter, r *http.Request) {
	tutors, err := s.svc.Tutors.ListApprovedTutors(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d tutors found", len(tutors)), envelope{"tutors": tutors})
}

func (s *Server) handleTutorDetails(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "tutorId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tutor, err := s.svc.Tutors.TutorDetails(r.Context(), accountID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{"tutor": tutor})
}

func (s *Server) handleMyTutorProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Tutors.MyTutorProfile(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{"tutorProfile": profile})
}

func (s *Server) handleUpdateTutorProfile(w http.ResponseWriter, r *http.Request) {
	var req tutorDetailsRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Tutors.UpdateTutorProfile(r.Context(), actorFrom(r.Context()), req.details()); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "Tutor profile updated successfully!", nil)
}

func (s *Server) handleTutorDocuments(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "tutorId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	docs, err := s.svc.Tutors.GetTutorDocuments(r.Context(), actorFrom(r.Context()), profileID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, "", envelope{"documents": docs})
}

func (s *Server) handleAllTutorDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.svc.Tutors.ListAllTutorsWithDocuments(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeOK(w, fmt.Sprintf("%d tutors found", len(docs)), envelope{"tutors": docs})
}
