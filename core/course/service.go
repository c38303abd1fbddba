package course

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/grade"
)

var (
	// errors
	ErrNotFound     = errors.New("course not found")
	ErrInvalidName  = errors.New("please enter a valid course name")
	ErrCourseExists = errors.New("this course already exists")
	ErrNameSlash    = errors.New("course name cannot contain /")
)

type (
	Course struct {
		Name string `json:"name"`
	}

	// Metadata is the free-form object stored next to a course, e.g. {"createdAt": "..."}.
	Metadata map[string]interface{}

	Repository interface {
		ListCourses() []Course
		SaveCourses(courses []Course)
		GetMetadata(name string) (Metadata, bool)
		SaveMetadata(name string, md Metadata)
		DeleteMetadata(name string)
	}

	Service struct {
		mu      sync.Mutex
		repo    Repository
		envRepo grade.Repository
	}
)

func NewService(repo Repository, envRepo grade.Repository) *Service {
	return &Service{repo: repo, envRepo: envRepo}
}

func (svc *Service) List() []Course {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.list()
}

func (svc *Service) Exists(name string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return indexOf(svc.list(), core.CleanString(name)) >= 0
}

// Create registers a course with its metadata and an empty grade environment.
func (svc *Service) Create(name string) (Course, error) {
	name = core.CleanString(name)
	if name == "" {
		return Course{}, core.NewValidationError(ErrInvalidName, core.FieldError{Field: "name", Error: ErrInvalidName.Error()})
	}
	// the name is a single path segment and part of its storage keys
	if strings.Contains(name, "/") {
		return Course{}, core.NewValidationError(ErrNameSlash, core.FieldError{Field: "name", Error: ErrNameSlash.Error()})
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	courses := svc.list()
	if indexOf(courses, name) >= 0 {
		return Course{}, core.NewValidationError(ErrCourseExists, core.FieldError{Field: "name", Error: ErrCourseExists.Error()})
	}

	c := Course{Name: name}
	svc.repo.SaveCourses(append(courses, c))
	svc.repo.SaveMetadata(name, Metadata{"createdAt": core.NowFunc().UTC().Format(time.RFC3339)})
	svc.envRepo.SaveEnvironment(name, grade.NewEnvironment())
	return c, nil
}

func (svc *Service) Metadata(name string) (Metadata, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	name = core.CleanString(name)
	if indexOf(svc.list(), name) < 0 {
		return nil, ErrNotFound
	}
	md, ok := svc.repo.GetMetadata(name)
	if !ok {
		md = Metadata{}
	}
	return md, nil
}

// SyncMetadata merges updates into the stored metadata of the course.
func (svc *Service) SyncMetadata(name string, updates Metadata) (Metadata, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	name = core.CleanString(name)
	if indexOf(svc.list(), name) < 0 {
		return nil, ErrNotFound
	}
	md, ok := svc.repo.GetMetadata(name)
	if !ok {
		md = Metadata{}
	}
	for k, v := range updates {
		md[k] = v
	}
	svc.repo.SaveMetadata(name, md)
	return md, nil
}

// Delete removes the course from the list along with its metadata and grade environment.
func (svc *Service) Delete(name string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	name = core.CleanString(name)
	courses := svc.list()
	i := indexOf(courses, name)
	if i < 0 {
		return ErrNotFound
	}
	svc.repo.SaveCourses(append(courses[:i:i], courses[i+1:]...))
	svc.repo.DeleteMetadata(name)
	svc.envRepo.DeleteEnvironment(name)
	return nil
}

func (svc *Service) list() []Course {
	courses := svc.repo.ListCourses()
	if courses == nil {
		courses = []Course{}
	}
	return courses
}

func indexOf(courses []Course, name string) int {
	for i, c := range courses {
		if c.Name == name {
			return i
		}
	}
	return -1
}
