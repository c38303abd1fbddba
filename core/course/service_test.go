package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/daftari/core"
	"github.com/trezcool/daftari/core/grade"
)

type memRepo struct {
	courses  []Course
	metadata map[string]Metadata
	envs     map[string]grade.Environment
}

var (
	_ Repository       = (*memRepo)(nil) // interface compliance check
	_ grade.Repository = (*memRepo)(nil)
)

func (r *memRepo) ListCourses() []Course              { return append([]Course(nil), r.courses...) }
func (r *memRepo) SaveCourses(courses []Course)       { r.courses = courses }
func (r *memRepo) SaveMetadata(n string, md Metadata) { r.metadata[n] = md }
func (r *memRepo) DeleteMetadata(n string)            { delete(r.metadata, n) }

func (r *memRepo) GetMetadata(n string) (Metadata, bool) {
	md, ok := r.metadata[n]
	if !ok {
		return nil, false
	}
	out := make(Metadata, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out, true
}

func (r *memRepo) GetEnvironment(n string) grade.Environment {
	if env, ok := r.envs[n]; ok {
		return env
	}
	return grade.NewEnvironment()
}
func (r *memRepo) SaveEnvironment(n string, env grade.Environment) { r.envs[n] = env }
func (r *memRepo) DeleteEnvironment(n string)                      { delete(r.envs, n) }

func setup(t *testing.T) (*Service, *memRepo) {
	core.NowFunc = func() time.Time { return time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { core.NowFunc = time.Now })

	repo := &memRepo{metadata: make(map[string]Metadata), envs: make(map[string]grade.Environment)}
	return NewService(repo, repo), repo
}

func TestService_Create(t *testing.T) {
	svc, repo := setup(t)

	tests := []struct {
		name    string
		course  string
		wantErr error
	}{
		{name: "valid", course: " Linear Algebra "},
		{name: "second", course: "Physics"},
		{name: "blank", course: "   ", wantErr: ErrInvalidName},
		{name: "duplicate", course: "Linear Algebra", wantErr: ErrCourseExists},
		{name: "slash", course: "Math/Physics", wantErr: ErrNameSlash},
		{name: "percent and hebrew", course: "100% אלגברה"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.course)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("Create() error = %v, want *core.ValidationError", err)
			}
			assert.Equal(t, tt.wantErr, vErr.Err)
		})
	}

	assert.Equal(t, []Course{{Name: "Linear Algebra"}, {Name: "Physics"}, {Name: "100% אלגברה"}}, svc.List())
	assert.Equal(t, Metadata{"createdAt": "2024-10-01T12:00:00Z"}, repo.metadata["Linear Algebra"])
	assert.Equal(t, grade.NewEnvironment(), repo.envs["Physics"])
	assert.True(t, svc.Exists("Physics "))
	assert.False(t, svc.Exists("Chemistry"))
}

func TestService_SyncMetadata(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Create("Physics")
	require.NoError(t, err)

	md, err := svc.SyncMetadata("Physics", Metadata{"lecturer": "Dr. Cohen"})
	require.NoError(t, err)
	assert.Equal(t, Metadata{"createdAt": "2024-10-01T12:00:00Z", "lecturer": "Dr. Cohen"}, md)

	md, err = svc.Metadata("Physics")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Cohen", md["lecturer"])

	_, err = svc.SyncMetadata("Biology", Metadata{"x": 1})
	assert.Equal(t, ErrNotFound, err)
	_, err = svc.Metadata("Biology")
	assert.Equal(t, ErrNotFound, err)
}

func TestService_Delete(t *testing.T) {
	svc, repo := setup(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(name)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete("B"))
	assert.Equal(t, []Course{{Name: "A"}, {Name: "C"}}, svc.List())
	assert.NotContains(t, repo.metadata, "B")
	assert.NotContains(t, repo.envs, "B")
	assert.Contains(t, repo.envs, "A")

	assert.Equal(t, ErrNotFound, svc.Delete("B"))

	// a deleted course can be created again
	_, err := svc.Create("B")
	assert.NoError(t, err)
}
