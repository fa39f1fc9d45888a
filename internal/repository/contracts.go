package repository

import "github.com/Freeeeeet/tutorlink/internal/service"

var (
	_ service.AccountRepository      = (*AccountRepository)(nil)
	_ service.TutorProfileRepository = (*TutorProfileRepository)(nil)
	_ service.PostRepository         = (*PostRepository)(nil)
	_ service.ApplicationRepository  = (*ApplicationRepository)(nil)
	_ service.TutorRequestRepository = (*TutorRequestRepository)(nil)
)
