package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const selectTaskColumns = `
SELECT id, title, description, status, completed, priority, due_date, completed_at, created_at
FROM tasks
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          uint64         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Completed   bool           `db:"completed"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullTime   `db:"due_date"`
	CompletedAt sql.NullTime   `db:"completed_at"`
	CreatedAt   time.Time      `db:"created_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	return r.selectTasks(ctx, selectTaskColumns+"ORDER BY id")
}

// ListRecent returns the newest tasks first, ordered by id descending. This
// assumes auto-increment ids track creation order.
func (r *TaskRepository) ListRecent(ctx context.Context, limit int) ([]domain.Task, error) {
	return r.selectTasks(ctx, selectTaskColumns+"ORDER BY id DESC LIMIT ?", limit)
}

func (r *TaskRepository) ListByCompletion(ctx context.Context, completed bool) ([]domain.Task, error) {
	return r.selectTasks(ctx, selectTaskColumns+"WHERE completed = ? ORDER BY id", completed)
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, selectTaskColumns+"WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	result, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (title, description, status, completed, priority, due_date, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.Title,
		input.Description,
		string(input.Status),
		input.Completed,
		input.Priority,
		input.DueDate,
		input.CompletedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}

	// Re-read so created_at reflects what the database actually stored.
	return r.FindByID(ctx, uint64(id))
}

func (r *TaskRepository) Update(ctx context.Context, id uint64, patch domain.UpdateTaskInput) error {
	assignments := make([]string, 0, 7)
	args := make([]any, 0, 8)

	if patch.Title != nil {
		assignments = append(assignments, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.DescriptionSet {
		assignments = append(assignments, "description = ?")
		args = append(args, patch.Description)
	}
	if patch.Status != nil {
		assignments = append(assignments, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Completed != nil {
		assignments = append(assignments, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if patch.Priority != nil {
		assignments = append(assignments, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.DueDateSet {
		assignments = append(assignments, "due_date = ?")
		args = append(args, patch.DueDate)
	}
	if patch.CompletedAtSet {
		assignments = append(assignments, "completed_at = ?")
		args = append(args, patch.CompletedAt)
	}

	if len(assignments) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(assignments, ", "))
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM tasks")
	return count, err
}

func (r *TaskRepository) CountByCompletion(ctx context.Context, completed bool) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM tasks WHERE completed = ?", completed)
	return count, err
}

func (r *TaskRepository) selectTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Completed: row.Completed,
		Priority:  row.Priority,
		CreatedAt: row.CreatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		task.CompletedAt = &value
	}

	return task
}
