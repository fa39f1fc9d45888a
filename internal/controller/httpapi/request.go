package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Freeeeeet/tutorlink/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

var errBadRequest = &service.Error{Kind: service.ErrValidation, Message: "Invalid request body"}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. An empty body decodes to the zero value.
func (s *Server) decode(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return errBadRequest
	}
	return s.check(dst)
}

func (s *Server) check(dst interface{}) error {
	err := s.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errBadRequest
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return &service.Error{Kind: service.ErrValidation, Message: "Missing required fields: " + strings.Join(missing, ", ")}
	}
	return &service.Error{Kind: service.ErrValidation, Message: "Invalid fields: " + strings.Join(invalid, ", ")}
}

// pathID parses a UUID path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, &service.Error{Kind: service.ErrValidation, Message: "Invalid " + name}
	}
	return id, nil
}

type registerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Role     string `json:"role" validate:"required"`
	Address  string `json:"address"`
}

type profileRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Gender   string `json:"gender"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

type pictureRequest struct {
	ProfilePictureURL string `json:"profilePictureUrl" validate:"required"`
}

type postRequest struct {
	ClassLevel       string `json:"classLevel" validate:"required"`
	Group            string `json:"group"`
	Subject          string `json:"subject" validate:"required"`
	Salary           string `json:"salary" validate:"required"`
	Gender           string `json:"gender" validate:"required"`
	Location         string `json:"location" validate:"required"`
	Requirement      string `json:"requirement" validate:"required"`
	StudentIDCardURL string `json:"studentIdCardUrl" validate:"required"`
}

type applyRequest struct {
	Message string `json:"message"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type tutorDetailsRequest struct {
	FirstName          string `json:"firstName" validate:"required"`
	LastName           string `json:"lastName" validate:"required"`
	SSCResult          string `json:"sscResult"`
	SSCDepartment      string `json:"sscDept"`
	HSCResult          string `json:"hscResult"`
	HSCDepartment      string `json:"hscDept"`
	HonoursResult      string `json:"honoursResult"`
	HonoursInstitution string `json:"honoursInst"`
	HonoursDepartment  string `json:"honoursDept"`
	MastersResult      string `json:"mastersResult"`
	MastersInstitution string `json:"mastersInst"`
	MastersDepartment  string `json:"mastersDept"`
	Bio                string `json:"bio"`
	ProfilePicURL      string `json:"profilePicUrl"`
}

type tutorApplicationRequest struct {
	tutorDetailsRequest
	InstitutionIDURL string `json:"institutionIdUrl" validate:"required"`
	NIDURL           string `json:"nidUrl" validate:"required"`
}

type sendRequestRequest struct {
	TutorID string `json:"tutorId" validate:"required,uuid"`
	Message string `json:"message"`
}
