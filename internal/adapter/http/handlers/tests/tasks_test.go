package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apiresponse"
	"taskboard/pkg/translator"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTaskByID(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id uint64, patch domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CompleteTask(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *taskServiceMock) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	return m.listCall(m.Called(ctx))
}

func (m *taskServiceMock) GetActiveTasks(ctx context.Context) ([]domain.Task, error) {
	return m.listCall(m.Called(ctx))
}

func (m *taskServiceMock) GetCompletedTasks(ctx context.Context) ([]domain.Task, error) {
	return m.listCall(m.Called(ctx))
}

func (m *taskServiceMock) GetRecentTasks(ctx context.Context) ([]domain.Task, error) {
	return m.listCall(m.Called(ctx))
}

func (m *taskServiceMock) GetProgress(ctx context.Context) (domain.Progress, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Progress), args.Error(1)
}

func (m *taskServiceMock) listCall(args mock.Arguments) ([]domain.Task, error) {
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func newRouter(serviceMock *taskServiceMock) *gin.Engine {
	handler := handlers.NewTaskHandler(serviceMock)

	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware())
	api.GET("/tasks/recent", handler.ListRecentTasks)
	api.GET("/tasks/all", handler.ListAllTasks)
	api.GET("/tasks/active", handler.ListActiveTasks)
	api.GET("/tasks/completed", handler.ListCompletedTasks)
	api.GET("/tasks/progress", handler.GetProgress)
	api.POST("/tasks", handler.CreateTask)
	api.GET("/tasks", handler.ListAllTasks)
	api.GET("/tasks/:id", handler.GetTask)
	api.PUT("/tasks/:id", handler.UpdateTask)
	api.PUT("/tasks/:id/mark-as-done", handler.MarkAsDone)
	api.DELETE("/tasks/:id", handler.DeleteTask)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Language", translator.LanguageEn)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiresponse.Envelope {
	t.Helper()
	var envelope apiresponse.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func taskFromEnvelope(t *testing.T, envelope apiresponse.Envelope) map[string]any {
	t.Helper()
	task, ok := envelope.Task.(map[string]any)
	require.True(t, ok, "envelope has no task payload")
	return task
}

func samplePendingTask(id uint64) domain.Task {
	return domain.Task{
		ID:        id,
		Title:     "Buy milk",
		Status:    domain.TaskStatusPending,
		Completed: false,
		Priority:  domain.DefaultPriority,
		CreatedAt: time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC),
	}
}

func sampleCompletedTask(id uint64) domain.Task {
	completedAt := time.Date(2026, 3, 2, 10, 20, 30, 0, time.UTC)
	task := samplePendingTask(id)
	task.Status = domain.TaskStatusCompleted
	task.Completed = true
	task.CompletedAt = &completedAt
	return task
}

func TestCreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.Title == "Buy milk" && input.Description == nil
	})).Return(samplePendingTask(1), nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	require.Equal(t, "Task created successfully", envelope.Message)

	task := taskFromEnvelope(t, envelope)
	require.GreaterOrEqual(t, task["id"].(float64), float64(1))
	require.Equal(t, "pending", task["status"])
	require.Equal(t, "medium", task["priority"])
	require.Equal(t, false, task["completed"])
	require.Nil(t, task["description"])
	serviceMock.AssertExpectations(t)
}

func TestCreateTask_MissingTitle(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := perform(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"description":"no title"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.False(t, envelope.Success)
	require.Contains(t, envelope.Errors, "title")
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestCreateTask_BlankTitle(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := perform(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":"   "}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.False(t, envelope.Success)
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestCreateTask_InvalidStatus(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := perform(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":"x","status":"archived"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.Contains(t, envelope.Errors, "status")
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestCreateTask_MalformedBody(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := perform(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.False(t, envelope.Success)
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestCreateTask_ServiceFailure(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.Anything).Return(domain.Task{}, errors.New("db is down")).Once()

	rec := perform(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.False(t, envelope.Success)
	require.Equal(t, "Internal server error", envelope.Message)
	serviceMock.AssertExpectations(t)
}

func TestGetTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTaskByID", mock.Anything, uint64(1)).Return(samplePendingTask(1), nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	task := taskFromEnvelope(t, envelope)
	require.Equal(t, "Buy milk", task["title"])
	require.Equal(t, "2026-03-01T10:20:30Z", task["created_at"])
	serviceMock.AssertExpectations(t)
}

func TestGetTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTaskByID", mock.Anything, uint64(404)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/404", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.False(t, envelope.Success)
	require.Equal(t, "Task not found", envelope.Message)
	serviceMock.AssertExpectations(t)
}

func TestGetTask_InvalidID(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/not-a-number", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "GetTaskByID", mock.Anything, mock.Anything)
}

func TestUpdateTask_Success(t *testing.T) {
	updated := samplePendingTask(1)
	updated.Title = "Buy oat milk"

	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(1), mock.MatchedBy(func(patch domain.UpdateTaskInput) bool {
		return patch.Title != nil && *patch.Title == "Buy oat milk"
	})).Return(updated, nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodPut, "/api/tasks/1", `{"title":"Buy oat milk"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	require.Equal(t, "Task updated successfully", envelope.Message)
	task := taskFromEnvelope(t, envelope)
	require.Equal(t, "Buy oat milk", task["title"])
	serviceMock.AssertExpectations(t)
}

func TestUpdateTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(404), mock.Anything).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	rec := perform(newRouter(serviceMock), http.MethodPut, "/api/tasks/404", `{"title":"renamed"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestUpdateTask_EmptyPatch(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := perform(newRouter(serviceMock), http.MethodPut, "/api/tasks/1", `{}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	serviceMock.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTask_NullDescriptionClearsField(t *testing.T) {
	updated := samplePendingTask(1)

	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(1), mock.MatchedBy(func(patch domain.UpdateTaskInput) bool {
		return patch.DescriptionSet && patch.Description == nil
	})).Return(updated, nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodPut, "/api/tasks/1", `{"description":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestMarkAsDone_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, uint64(1)).Return(sampleCompletedTask(1), nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodPut, "/api/tasks/1/mark-as-done", "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	require.Equal(t, "Task marked as completed", envelope.Message)
	task := taskFromEnvelope(t, envelope)
	require.Equal(t, "completed", task["status"])
	require.Equal(t, true, task["completed"])
	require.NotNil(t, task["completed_at"])
	serviceMock.AssertExpectations(t)
}

func TestMarkAsDone_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, uint64(404)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	rec := perform(newRouter(serviceMock), http.MethodPut, "/api/tasks/404/mark-as-done", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestDeleteTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, uint64(1)).Return(nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodDelete, "/api/tasks/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	require.Equal(t, "Task deleted successfully", envelope.Message)
	require.Nil(t, envelope.Task)
	serviceMock.AssertExpectations(t)
}

func TestDeleteTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, uint64(404)).Return(domain.ErrTaskNotFound).Once()

	rec := perform(newRouter(serviceMock), http.MethodDelete, "/api/tasks/404", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "Task not found", envelope.Message)
	serviceMock.AssertExpectations(t)
}

func TestListAllTasks_EmptyCollectionIsOK(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetAllTasks", mock.Anything).Return([]domain.Task{}, nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/all", "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	require.NotNil(t, envelope.Count)
	require.Zero(t, *envelope.Count)
	serviceMock.AssertExpectations(t)
}

func TestListRecentTasks_ReturnsServiceOrder(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetRecentTasks", mock.Anything).Return([]domain.Task{
		samplePendingTask(10),
		samplePendingTask(9),
		samplePendingTask(8),
	}, nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/recent", "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "Recent tasks retrieved", envelope.Message)

	items, ok := envelope.Tasks.([]any)
	require.True(t, ok)
	require.Len(t, items, 3)
	require.Equal(t, float64(10), items[0].(map[string]any)["id"])
	require.Equal(t, float64(8), items[2].(map[string]any)["id"])
	serviceMock.AssertExpectations(t)
}

func TestListActiveTasks_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetActiveTasks", mock.Anything).Return([]domain.Task{samplePendingTask(1)}, nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/active", "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "Active tasks retrieved", envelope.Message)
	serviceMock.AssertExpectations(t)
}

func TestListCompletedTasks_ServiceFailure(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetCompletedTasks", mock.Anything).Return(nil, errors.New("db is down")).Once()

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/completed", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestGetProgress_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetProgress", mock.Anything).Return(domain.Progress{
		Total:      5,
		Completed:  1,
		Pending:    4,
		Percentage: 20,
	}, nil).Once()

	rec := perform(newRouter(serviceMock), http.MethodGet, "/api/tasks/progress", "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)

	stats, ok := envelope.Statistics.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(5), stats["total"])
	require.Equal(t, float64(1), stats["completed"])
	require.Equal(t, float64(4), stats["pending"])
	require.Equal(t, float64(20), stats["percentage"])
	serviceMock.AssertExpectations(t)
}

func TestGetTask_FrenchMessage(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTaskByID", mock.Anything, uint64(404)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/404", nil)
	req.Header.Set("Accept-Language", translator.LanguageFr)
	rec := httptest.NewRecorder()
	newRouter(serviceMock).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "Tâche introuvable", envelope.Message)
	serviceMock.AssertExpectations(t)
}
