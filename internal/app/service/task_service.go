package service

import (
	"context"
	"math"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const recentTasksLimit = 5

// TaskService enforces field defaults and the status/completed pairing.
// Not-found is reported as domain.ErrTaskNotFound; anything else is a hard
// failure surfaced to the handler boundary.
type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if input.Priority == "" {
		input.Priority = domain.DefaultPriority
	}
	if input.Status == "" {
		input.Status = domain.TaskStatusPending
	}

	// The completed flag mirrors the status enum; never trust the caller to
	// keep the pair aligned.
	input.Completed = input.Status == domain.TaskStatusCompleted
	if input.Completed && input.CompletedAt == nil {
		now := time.Now()
		input.CompletedAt = &now
	}
	if !input.Completed {
		input.CompletedAt = nil
	}

	return s.taskRepository.Create(ctx, input)
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uint64) (domain.Task, error) {
	return s.taskRepository.FindByID(ctx, id)
}

func (s *TaskService) UpdateTask(ctx context.Context, id uint64, patch domain.UpdateTaskInput) (domain.Task, error) {
	current, err := s.taskRepository.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	patch = reconcileCompletion(current, patch)

	if !patch.Empty() {
		if err := s.taskRepository.Update(ctx, id, patch); err != nil {
			return domain.Task{}, err
		}
	}

	// Re-read so the caller sees the post-update state. Concurrent writers
	// race with last-write-wins semantics; that is accepted here.
	return s.taskRepository.FindByID(ctx, id)
}

func (s *TaskService) CompleteTask(ctx context.Context, id uint64) (domain.Task, error) {
	if _, err := s.taskRepository.FindByID(ctx, id); err != nil {
		return domain.Task{}, err
	}

	// Completing an already-completed task is a no-op that still succeeds.
	status := domain.TaskStatusCompleted
	completed := true
	now := time.Now()
	patch := domain.UpdateTaskInput{
		Status:         &status,
		Completed:      &completed,
		CompletedAt:    &now,
		CompletedAtSet: true,
	}
	if err := s.taskRepository.Update(ctx, id, patch); err != nil {
		return domain.Task{}, err
	}

	return s.taskRepository.FindByID(ctx, id)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	return s.taskRepository.Delete(ctx, id)
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepository.ListAll(ctx)
}

func (s *TaskService) GetActiveTasks(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepository.ListByCompletion(ctx, false)
}

func (s *TaskService) GetCompletedTasks(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepository.ListByCompletion(ctx, true)
}

func (s *TaskService) GetRecentTasks(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepository.ListRecent(ctx, recentTasksLimit)
}

func (s *TaskService) GetProgress(ctx context.Context) (domain.Progress, error) {
	total, err := s.taskRepository.CountAll(ctx)
	if err != nil {
		return domain.Progress{}, err
	}
	completed, err := s.taskRepository.CountByCompletion(ctx, true)
	if err != nil {
		return domain.Progress{}, err
	}
	pending, err := s.taskRepository.CountByCompletion(ctx, false)
	if err != nil {
		return domain.Progress{}, err
	}

	percentage := 0
	if total > 0 {
		// Round half up.
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return domain.Progress{
		Total:      total,
		Completed:  completed,
		Pending:    pending,
		Percentage: percentage,
	}, nil
}

// reconcileCompletion keeps status, completed and completed_at moving together
// no matter which of them the patch touches.
func reconcileCompletion(current domain.Task, patch domain.UpdateTaskInput) domain.UpdateTaskInput {
	targetCompleted := current.Completed
	switch {
	case patch.Status != nil:
		targetCompleted = *patch.Status == domain.TaskStatusCompleted
	case patch.Completed != nil:
		targetCompleted = *patch.Completed
	default:
		return patch
	}

	status := domain.TaskStatusPending
	if targetCompleted {
		status = domain.TaskStatusCompleted
	}
	completed := targetCompleted
	patch.Status = &status
	patch.Completed = &completed

	if targetCompleted && !current.Completed {
		now := time.Now()
		patch.CompletedAt = &now
		patch.CompletedAtSet = true
	}
	if !targetCompleted && current.Completed {
		patch.CompletedAt = nil
		patch.CompletedAtSet = true
	}

	return patch
}
