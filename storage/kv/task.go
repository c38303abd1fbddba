package kv

import "github.com/trezcool/daftari/core/task"

type taskRepository struct {
	gw *Gateway
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(gw *Gateway) task.Repository {
	return &taskRepository{gw: gw}
}

func (repo *taskRepository) get(key string) []task.Task {
	var tasks []task.Task
	if !repo.gw.decode(key, &tasks) || tasks == nil {
		return []task.Task{}
	}
	return tasks
}

func (repo *taskRepository) GetActive() []task.Task {
	return repo.get(keyActiveTasks)
}

func (repo *taskRepository) GetCompleted() []task.Task {
	return repo.get(keyCompletedTasks)
}

func (repo *taskRepository) SaveActive(tasks []task.Task) {
	repo.gw.encode(keyActiveTasks, tasks)
}

func (repo *taskRepository) SaveCompleted(tasks []task.Task) {
	repo.gw.encode(keyCompletedTasks, tasks)
}
