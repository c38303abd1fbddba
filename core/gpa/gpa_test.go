package gpa

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/daftari/core"
)

type memRepo struct {
	sync.Mutex
	years Years
	saves int
}

var _ Repository = (*memRepo)(nil) // interface compliance check

func (r *memRepo) GetYears() Years {
	r.Lock()
	defer r.Unlock()
	out := make(Years, len(r.years))
	for y, recs := range r.years {
		out[y] = append([]Record(nil), recs...)
	}
	return out
}

func (r *memRepo) SaveYears(years Years) {
	r.Lock()
	defer r.Unlock()
	r.years = years
	r.saves++
}

func setup() (*Service, *memRepo) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	repo := &memRepo{}
	return NewService(repo, validate), repo
}

func fptr(f float64) *float64 { return &f }

func TestYearGpa(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    float64
	}{
		{name: "empty", records: nil, want: 0},
		{name: "zero credits", records: []Record{{Grade: 90, CreditPoints: 0}}, want: 0},
		{name: "rounded to 2 decimals", records: []Record{{Grade: 90, CreditPoints: 4}, {Grade: 70, CreditPoints: 2}}, want: 83.33},
		{name: "single", records: []Record{{Grade: 77.5, CreditPoints: 3}}, want: 77.5},
		{name: "repeating decimal", records: []Record{{Grade: 85, CreditPoints: 1}, {Grade: 90, CreditPoints: 2}}, want: 88.33},
		{name: "two thirds", records: []Record{{Grade: 100, CreditPoints: 2}, {Grade: 0, CreditPoints: 1}}, want: 66.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearGpa(tt.records); got != tt.want {
				t.Errorf("YearGpa() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverallGpa(t *testing.T) {
	years := Years{
		2023: {{Name: "Calculus", Grade: 90, CreditPoints: 4}},
		2024: {{Name: "Physics", Grade: 70, CreditPoints: 2}},
		2025: {},
	}
	assert.Equal(t, 83.33, OverallGpa(years))
	assert.Equal(t, float64(0), OverallGpa(Years{}))
	assert.Equal(t, float64(0), OverallGpa(Years{2024: {{Grade: 90}}}))
}

func TestTotalCreditsForYear(t *testing.T) {
	assert.Equal(t, float64(0), TotalCreditsForYear(nil))
	assert.Equal(t, 7.5, TotalCreditsForYear([]Record{{CreditPoints: 4}, {CreditPoints: 3.5}}))
}

func TestBySemester(t *testing.T) {
	records := []Record{
		{Name: "a", Semester: SemesterA},
		{Name: "b", Semester: SemesterB},
		{Name: "y", Semester: SemesterYearly},
		{Name: "s", Semester: SemesterSummer},
	}
	tests := []struct {
		semester string
		want     []string
	}{
		{semester: SemesterA, want: []string{"a", "y"}},
		{semester: SemesterB, want: []string{"b", "y"}},
		{semester: SemesterSummer, want: []string{"y", "s"}},
		{semester: SemesterYearly, want: []string{"y"}},
	}
	for _, tt := range tests {
		t.Run(tt.semester, func(t *testing.T) {
			var got []string
			for _, r := range BySemester(records, tt.semester) {
				got = append(got, r.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_AddCourse(t *testing.T) {
	svc, repo := setup()

	tests := []struct {
		name    string
		rec     NewRecord
		wantErr bool
	}{
		{name: "valid", rec: NewRecord{Name: "Calculus", Grade: fptr(90), CreditPoints: fptr(4)}},
		{name: "explicit semester", rec: NewRecord{Name: "Physics", Grade: fptr(70), CreditPoints: fptr(2), Semester: SemesterB}},
		{name: "blank name", rec: NewRecord{Name: " ", Grade: fptr(70), CreditPoints: fptr(2)}, wantErr: true},
		{name: "grade above 100", rec: NewRecord{Name: "x", Grade: fptr(101), CreditPoints: fptr(2)}, wantErr: true},
		{name: "negative grade", rec: NewRecord{Name: "x", Grade: fptr(-1), CreditPoints: fptr(2)}, wantErr: true},
		{name: "missing grade", rec: NewRecord{Name: "x", CreditPoints: fptr(2)}, wantErr: true},
		{name: "zero credits", rec: NewRecord{Name: "x", Grade: fptr(50), CreditPoints: fptr(0)}, wantErr: true},
		{name: "unknown semester", rec: NewRecord{Name: "x", Grade: fptr(50), CreditPoints: fptr(1), Semester: "ג"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddCourse(DefaultYear, tt.rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddCourse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var vErrs validator.ValidationErrors
				assert.True(t, errors.As(err, &vErrs))
			}
		})
	}

	assert.Equal(t, 2, repo.saves)
	sum := svc.Summary(DefaultYear)
	assert.Equal(t, []Record{
		{Name: "Calculus", Grade: 90, CreditPoints: 4, Semester: SemesterA},
		{Name: "Physics", Grade: 70, CreditPoints: 2, Semester: SemesterB},
	}, sum.Courses)
	assert.Equal(t, 83.33, sum.YearGpa)
	assert.Equal(t, 83.33, sum.OverallGpa)
	assert.Equal(t, float64(6), sum.YearCredits)
}

func TestService_EditDeleteCourse(t *testing.T) {
	svc, _ := setup()
	_, err := svc.AddCourse(2023, NewRecord{Name: "Algebra", Grade: fptr(100), CreditPoints: fptr(2)})
	require.NoError(t, err)
	_, err = svc.AddCourse(2024, NewRecord{Name: "Logic", Grade: fptr(60), CreditPoints: fptr(2)})
	require.NoError(t, err)
	_, err = svc.AddCourse(2024, NewRecord{Name: "Data", Grade: fptr(80), CreditPoints: fptr(2)})
	require.NoError(t, err)

	sum, err := svc.EditCourse(2024, 0, NewRecord{Name: "Logic", Grade: fptr(70), CreditPoints: fptr(2), Semester: SemesterYearly})
	require.NoError(t, err)
	assert.Equal(t, float64(75), sum.YearGpa)
	assert.Equal(t, 83.33, sum.OverallGpa)

	_, err = svc.EditCourse(2024, 2, NewRecord{Name: "x", Grade: fptr(70), CreditPoints: fptr(2)})
	assert.Equal(t, ErrCourseNotFound, err)

	sum, err = svc.DeleteCourse(2024, 1)
	require.NoError(t, err)
	assert.Len(t, sum.Courses, 1)
	assert.Equal(t, float64(70), sum.YearGpa)

	_, err = svc.DeleteCourse(2030, 0)
	assert.Equal(t, ErrCourseNotFound, err)

	recs, err := svc.BySemester(2024, SemesterB)
	require.NoError(t, err)
	assert.Equal(t, []Record{{Name: "Logic", Grade: 70, CreditPoints: 2, Semester: SemesterYearly}}, recs)

	_, err = svc.BySemester(2024, "winter")
	assert.True(t, core.IsValidationError(err))
}

func TestService_Summary_emptyYear(t *testing.T) {
	svc, _ := setup()
	sum := svc.Summary(1999)
	assert.Equal(t, 1999, sum.Year)
	assert.NotNil(t, sum.Courses)
	assert.Equal(t, float64(0), sum.YearGpa)
	assert.Equal(t, float64(0), sum.YearCredits)
}
