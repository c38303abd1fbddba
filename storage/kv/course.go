package kv

import (
	"github.com/trezcool/daftari/core/course"
	"github.com/trezcool/daftari/core/grade"
)

type courseRepository struct {
	gw *Gateway
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(gw *Gateway) course.Repository {
	return &courseRepository{gw: gw}
}

func (repo *courseRepository) ListCourses() []course.Course {
	var courses []course.Course
	if !repo.gw.decode(keyCourses, &courses) || courses == nil {
		return []course.Course{}
	}
	return courses
}

func (repo *courseRepository) SaveCourses(courses []course.Course) {
	repo.gw.encode(keyCourses, courses)
}

func (repo *courseRepository) GetMetadata(name string) (course.Metadata, bool) {
	var md course.Metadata
	if !repo.gw.decode(keyCoursePrefix+name, &md) || md == nil {
		return nil, false
	}
	return md, true
}

func (repo *courseRepository) SaveMetadata(name string, md course.Metadata) {
	repo.gw.encode(keyCoursePrefix+name, md)
}

func (repo *courseRepository) DeleteMetadata(name string) {
	repo.gw.Remove(keyCoursePrefix + name)
}

type environmentRepository struct {
	gw *Gateway
}

var _ grade.Repository = (*environmentRepository)(nil) // interface compliance check

func NewEnvironmentRepository(gw *Gateway) grade.Repository {
	return &environmentRepository{gw: gw}
}

func (repo *environmentRepository) GetEnvironment(course string) grade.Environment {
	var env grade.Environment
	if !repo.gw.decode(keyEnvPrefix+course, &env) {
		return grade.NewEnvironment()
	}
	return env
}

func (repo *environmentRepository) SaveEnvironment(course string, env grade.Environment) {
	repo.gw.encode(keyEnvPrefix+course, env)
}

func (repo *environmentRepository) DeleteEnvironment(course string) {
	repo.gw.Remove(keyEnvPrefix + course)
}
