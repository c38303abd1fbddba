package task

import (
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/daftari/core"
)

var (
	// errors
	ErrNotFound = errors.New("task not found")
)

type (
	// Repository persists the active and completed collections under separate keys.
	Repository interface {
		GetActive() []Task
		GetCompleted() []Task
		SaveActive(tasks []Task)
		SaveCompleted(tasks []Task)
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

func (svc *Service) All() Collections {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	active, completed := svc.load()
	return Collections{Active: active, Completed: completed}
}

func (svc *Service) Add(nt NewTask) (Task, error) {
	if err := nt.Validate(svc.validate); err != nil {
		return Task{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, completed := svc.load()
	t := nt.apply(Task{ID: newID(active, completed)})
	svc.repo.SaveActive(append(active, t))
	return t, nil
}

// Edit updates the task in whichever collection holds it.
func (svc *Service) Edit(id int64, nt NewTask) (Task, error) {
	if err := nt.Validate(svc.validate); err != nil {
		return Task{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, completed := svc.load()
	if i := indexOf(active, id); i >= 0 {
		active[i] = nt.apply(active[i])
		svc.repo.SaveActive(active)
		return active[i], nil
	}
	if i := indexOf(completed, id); i >= 0 {
		completed[i] = nt.apply(completed[i])
		svc.repo.SaveCompleted(completed)
		return completed[i], nil
	}
	return Task{}, ErrNotFound
}

func (svc *Service) Delete(id int64) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, completed := svc.load()
	if i := indexOf(active, id); i >= 0 {
		svc.repo.SaveActive(remove(active, i))
		return nil
	}
	if i := indexOf(completed, id); i >= 0 {
		svc.repo.SaveCompleted(remove(completed, i))
		return nil
	}
	return ErrNotFound
}

// Complete moves the task from the active to the completed collection.
func (svc *Service) Complete(id int64) (Task, error) {
	return svc.transfer(id, true)
}

// Reactivate moves the task from the completed back to the active collection.
func (svc *Service) Reactivate(id int64) (Task, error) {
	return svc.transfer(id, false)
}

func (svc *Service) transfer(id int64, complete bool) (Task, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, completed := svc.load()
	from, to := &active, &completed
	if !complete {
		from, to = &completed, &active
	}
	i := indexOf(*from, id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	t := (*from)[i]
	t.Completed = complete
	*from = remove(*from, i)
	*to = append(*to, t)

	svc.repo.SaveActive(active)
	svc.repo.SaveCompleted(completed)
	return t, nil
}

// Closest returns at most n active tasks due after now, soonest first.
func (svc *Service) Closest(now time.Time, n int) []Task {
	svc.mu.Lock()
	active, _ := svc.load()
	svc.mu.Unlock()

	due := make([]Task, 0, len(active))
	for _, t := range active {
		if t.SubmitDate.After(now) {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].SubmitDate.Before(due[j].SubmitDate) })
	if len(due) > n {
		due = due[:n]
	}
	return due
}

func (svc *Service) load() ([]Task, []Task) {
	active, completed := svc.repo.GetActive(), svc.repo.GetCompleted()
	if active == nil {
		active = []Task{}
	}
	if completed == nil {
		completed = []Task{}
	}
	return active, completed
}

// newID uses the creation time in milliseconds, moved past any id already taken.
func newID(collections ...[]Task) int64 {
	id := core.NowFunc().UnixNano() / int64(time.Millisecond)
	for _, tasks := range collections {
		for _, t := range tasks {
			if t.ID >= id {
				id = t.ID + 1
			}
		}
	}
	return id
}

func indexOf(tasks []Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func remove(tasks []Task, i int) []Task {
	return append(tasks[:i:i], tasks[i+1:]...)
}
