package dashboard

import (
	"time"

	"github.com/trezcool/daftari/core/schedule"
	"github.com/trezcool/daftari/core/task"
)

const (
	GreetingMorning   = "בוקר טוב"
	GreetingAfternoon = "צהריים טובים"
	GreetingEvening   = "ערב טוב"

	upcomingHours = 4
	closestTasks  = 3
)

type Summary struct {
	Greeting     string            `json:"greeting"`
	NextLessons  []schedule.Lesson `json:"next_lessons"`
	ClosestTasks []task.Task       `json:"closest_tasks"`
}

func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return GreetingMorning
	case h < 18:
		return GreetingAfternoon
	default:
		return GreetingEvening
	}
}

type Service struct {
	schedSvc *schedule.Service
	taskSvc  *task.Service
}

func NewService(schedSvc *schedule.Service, taskSvc *task.Service) *Service {
	return &Service{schedSvc: schedSvc, taskSvc: taskSvc}
}

// Build returns the home summary as of now: lessons in the next hours and the closest due tasks.
func (svc *Service) Build(now time.Time) Summary {
	return Summary{
		Greeting:     Greeting(now),
		NextLessons:  svc.schedSvc.Upcoming(now, upcomingHours),
		ClosestTasks: svc.taskSvc.Closest(now, closestTasks),
	}
}
