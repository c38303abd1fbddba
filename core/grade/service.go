package grade

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrRecordNotFound  = errors.New("grade record not found")
	ErrInvalidCategory = errors.New("category must be one of assignments, tests or others")
	ErrWeightsTotal    = errors.New("the total percentages must equal 100%")
)

type (
	// Repository persists one Environment per course.
	// GetEnvironment returns NewEnvironment() when nothing (or nothing readable) is stored.
	Repository interface {
		GetEnvironment(course string) Environment
		SaveEnvironment(course string, env Environment)
		DeleteEnvironment(course string)
	}

	Service struct {
		mu       sync.Mutex
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Environment(course string) Environment {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.load(course)
}

func (svc *Service) Summary(course string) Summary {
	return Summarize(svc.Environment(course))
}

func (svc *Service) AddRecord(course string, cat Category, nr NewRecord) (Environment, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Environment{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	env := svc.load(course)
	env.setRecords(cat, append(env.Records(cat), nr.record()))
	svc.repo.SaveEnvironment(course, env)
	return env, nil
}

// EditRecord replaces the record at idx within cat.
func (svc *Service) EditRecord(course string, cat Category, idx int, nr NewRecord) (Environment, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Environment{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	env := svc.load(course)
	records := env.Records(cat)
	if idx < 0 || idx >= len(records) {
		return Environment{}, ErrRecordNotFound
	}
	updated := make([]Record, len(records))
	copy(updated, records)
	updated[idx] = nr.record()
	env.setRecords(cat, updated)
	svc.repo.SaveEnvironment(course, env)
	return env, nil
}

func (svc *Service) DeleteRecord(course string, cat Category, idx int) (Environment, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	env := svc.load(course)
	records := env.Records(cat)
	if idx < 0 || idx >= len(records) {
		return Environment{}, ErrRecordNotFound
	}
	updated := make([]Record, 0, len(records)-1)
	updated = append(updated, records[:idx]...)
	updated = append(updated, records[idx+1:]...)
	env.setRecords(cat, updated)
	svc.repo.SaveEnvironment(course, env)
	return env, nil
}

// SetWeights stores new category weights; they must total 100.
func (svc *Service) SetWeights(course string, w Weights) (Environment, error) {
	if err := w.Validate(svc.validate); err != nil {
		return Environment{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	env := svc.load(course)
	env.CategoryPercentages = w
	svc.repo.SaveEnvironment(course, env)
	return env, nil
}

func (svc *Service) load(course string) Environment {
	env := svc.repo.GetEnvironment(course)
	env.normalize()
	return env
}
