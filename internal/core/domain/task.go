package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

const DefaultPriority = "medium"

type Task struct {
	ID          uint64
	Title       string
	Description *string
	Status      TaskStatus
	Completed   bool
	Priority    string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	Completed   bool
	Priority    string
	DueDate     *time.Time
	CompletedAt *time.Time
}

// UpdateTaskInput is a partial patch. The *Set flags distinguish "field absent"
// from "field explicitly set to null" for the nullable columns.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	Completed      *bool
	CompletedAt    *time.Time
	CompletedAtSet bool
	Priority       *string
	DueDate        *time.Time
	DueDateSet     bool
}

// Empty reports whether the patch carries no field at all.
func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		!in.DescriptionSet &&
		in.Status == nil &&
		in.Completed == nil &&
		!in.CompletedAtSet &&
		in.Priority == nil &&
		!in.DueDateSet
}

// Progress aggregates completion statistics over the whole task set.
type Progress struct {
	Total      int
	Completed  int
	Pending    int
	Percentage int
}
