package kv

import (
	"github.com/trezcool/daftari/core/gpa"
	"github.com/trezcool/daftari/core/schedule"
)

type timetableRepository struct {
	gw *Gateway
}

var _ schedule.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(gw *Gateway) schedule.Repository {
	return &timetableRepository{gw: gw}
}

func (repo *timetableRepository) GetTimetable() schedule.Timetable {
	var tt schedule.Timetable
	if !repo.gw.decode(keyTimetable, &tt) || tt == nil {
		return make(schedule.Timetable)
	}
	return tt
}

func (repo *timetableRepository) SaveTimetable(tt schedule.Timetable) {
	repo.gw.encode(keyTimetable, tt)
}

type yearRepository struct {
	gw *Gateway
}

var _ gpa.Repository = (*yearRepository)(nil) // interface compliance check

func NewYearRepository(gw *Gateway) gpa.Repository {
	return &yearRepository{gw: gw}
}

func (repo *yearRepository) GetYears() gpa.Years {
	var years gpa.Years
	if !repo.gw.decode(keyYears, &years) || years == nil {
		return make(gpa.Years)
	}
	return years
}

func (repo *yearRepository) SaveYears(years gpa.Years) {
	repo.gw.encode(keyYears, years)
}
