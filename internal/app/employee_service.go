package app

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"employee-directory/internal/model"
	"employee-directory/internal/repository"
	"employee-directory/internal/upload"
)

var (
	ErrAllFieldsRequired  = errors.New("All fields are required")
	ErrInvalidEmail       = errors.New("Invalid email format")
	ErrInvalidPhone       = errors.New("Phone number must be exactly 10 digits")
	ErrInvalidDepartment  = errors.New("Department must be a valid selection")
	ErrInvalidDesignation = errors.New("Designation must be a valid selection")
	ErrInvalidGender      = errors.New("Gender must be a valid selection")
	ErrPhotoRequired      = errors.New("Employee photo is required")
	ErrInvalidDateOfBirth = errors.New("Invalid date of birth")
)

var validationErrors = []error{
	ErrAllFieldsRequired,
	ErrInvalidEmail,
	ErrInvalidPhone,
	ErrInvalidDepartment,
	ErrInvalidDesignation,
	ErrInvalidGender,
	ErrPhotoRequired,
	ErrInvalidDateOfBirth,
	ErrEmailPasswordRequired,
	ErrIdentifierPasswordRequired,
}

// IsValidation reports whether err is the client's fault and recoverable by
// correcting the input.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// EmployeeStore is the slice of the employee repository the service needs.
type EmployeeStore interface {
	Create(employee *model.Employee) error
	List(filter repository.EmployeeFilter) ([]model.Employee, error)
}

// PhotoStore persists uploaded photos and removes orphans.
type PhotoStore interface {
	Save(fh *multipart.FileHeader) (upload.Result, error)
	Remove(storedPath string) error
}

// CleanupPublisher enqueues orphaned-photo cleanup jobs.
type CleanupPublisher interface {
	Publish(ctx context.Context, job upload.CleanupJob) error
}

// ListCache caches filtered list responses.
type ListCache interface {
	GetList(ctx context.Context, filter repository.EmployeeFilter) ([]model.Employee, bool, error)
	SetList(ctx context.Context, filter repository.EmployeeFilter, employees []model.Employee) error
	Invalidate(ctx context.Context) error
}

// MetaOptions are the closed vocabularies the client renders as selects and
// the service enforces on create. Static configuration, never derived from
// stored data.
type MetaOptions struct {
	Departments  []string `json:"departments"`
	Designations []string `json:"designations"`
	Genders      []string `json:"genders"`
}

type EmployeeService struct {
	employees EmployeeStore
	photos    PhotoStore
	cache     ListCache
	cleanup   CleanupPublisher
	meta      MetaOptions
}

type CreateEmployeeInput struct {
	FullName    string
	DateOfBirth string
	Email       string
	Department  string
	PhoneNumber string
	Designation string
	Gender      string
	Photo       *multipart.FileHeader
}

func NewEmployeeService(
	employees EmployeeStore,
	photos PhotoStore,
	cache ListCache,
	cleanup CleanupPublisher,
	meta MetaOptions,
) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		photos:    photos,
		cache:     cache,
		cleanup:   cleanup,
		meta:      meta,
	}
}

// Create validates in a fixed order so a given bad input always yields the
// same message, then writes the photo and the record. A record is never
// persisted pointing at a photo that failed to write, and a photo whose
// record failed to persist is handed to the cleanup queue.
func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*model.Employee, error) {
	fullName := strings.TrimSpace(input.FullName)
	dateOfBirth := strings.TrimSpace(input.DateOfBirth)
	email := strings.TrimSpace(input.Email)
	department := strings.TrimSpace(input.Department)
	phoneNumber := strings.TrimSpace(input.PhoneNumber)
	designation := strings.TrimSpace(input.Designation)
	gender := strings.TrimSpace(input.Gender)

	if fullName == "" || dateOfBirth == "" || email == "" || department == "" ||
		phoneNumber == "" || designation == "" || gender == "" {
		return nil, ErrAllFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !phonePattern.MatchString(phoneNumber) {
		return nil, ErrInvalidPhone
	}
	if !contains(s.meta.Departments, department) {
		return nil, ErrInvalidDepartment
	}
	if !contains(s.meta.Designations, designation) {
		return nil, ErrInvalidDesignation
	}
	if !contains(s.meta.Genders, gender) {
		return nil, ErrInvalidGender
	}
	if input.Photo == nil {
		return nil, ErrPhotoRequired
	}
	born, err := parseDate(dateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}

	photo, err := s.photos.Save(input.Photo)
	if err != nil {
		return nil, err
	}

	employee := &model.Employee{
		FullName:          fullName,
		DateOfBirth:       born,
		Email:             strings.ToLower(email),
		Department:        department,
		PhoneNumber:       phoneNumber,
		Designation:       designation,
		Gender:            gender,
		PhotoPath:         photo.Path,
		PhotoOriginalName: photo.OriginalName,
	}
	if err := s.employees.Create(employee); err != nil {
		s.discardPhoto(ctx, photo.Path)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("invalidate employee list cache failed: %v", err)
		}
	}
	return employee, nil
}

// List serves from the cache when it can, but cache trouble never fails a
// request: the store remains the source of truth.
func (s *EmployeeService) List(ctx context.Context, filter repository.EmployeeFilter) ([]model.Employee, error) {
	if s.cache != nil {
		if cached, hit, err := s.cache.GetList(ctx, filter); err == nil && hit {
			return cached, nil
		}
	}

	employees, err := s.employees.List(filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, filter, employees); err != nil {
			log.Printf("set employee list cache failed: %v", err)
		}
	}
	return employees, nil
}

func (s *EmployeeService) MetaOptions() MetaOptions {
	return MetaOptions{
		Departments:  append([]string(nil), s.meta.Departments...),
		Designations: append([]string(nil), s.meta.Designations...),
		Genders:      append([]string(nil), s.meta.Genders...),
	}
}

// discardPhoto prefers the async cleanup queue and falls back to removing the
// file in-line, so either way the failed create leaves nothing behind.
func (s *EmployeeService) discardPhoto(ctx context.Context, storedPath string) {
	if s.cleanup != nil {
		err := s.cleanup.Publish(ctx, upload.CleanupJob{Path: storedPath})
		if err == nil {
			return
		}
		log.Printf("enqueue photo cleanup failed: %v", err)
	}
	if err := s.photos.Remove(storedPath); err != nil {
		log.Printf("remove orphaned photo failed: %v", err)
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
