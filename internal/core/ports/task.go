package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type TaskRepository interface {
	ListAll(ctx context.Context) ([]domain.Task, error)
	// ListRecent orders by id descending: auto-increment ids track insertion
	// order, so this only holds while ids are never reused or backfilled.
	ListRecent(ctx context.Context, limit int) ([]domain.Task, error)
	ListByCompletion(ctx context.Context, completed bool) ([]domain.Task, error)
	FindByID(ctx context.Context, id uint64) (domain.Task, error)
	Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	Update(ctx context.Context, id uint64, patch domain.UpdateTaskInput) error
	Delete(ctx context.Context, id uint64) error
	CountAll(ctx context.Context) (int, error)
	CountByCompletion(ctx context.Context, completed bool) (int, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTaskByID(ctx context.Context, id uint64) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, patch domain.UpdateTaskInput) (domain.Task, error)
	CompleteTask(ctx context.Context, id uint64) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
	GetAllTasks(ctx context.Context) ([]domain.Task, error)
	GetActiveTasks(ctx context.Context) ([]domain.Task, error)
	GetCompletedTasks(ctx context.Context) ([]domain.Task, error)
	GetRecentTasks(ctx context.Context) ([]domain.Task, error)
	GetProgress(ctx context.Context) (domain.Progress, error)
}
