package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apiresponse"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondBindingError(c, lang, err)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(
			http.StatusUnprocessableEntity,
			apiresponse.Error(apiresponse.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusUnprocessableEntity,
			apiresponse.Error(apiresponse.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apiresponse.Error(apiresponse.MsgInternalError, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, apiresponse.Task(apiresponse.MsgTaskCreated, lang, mapper.ToTaskItem(task)))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apiresponse.Error(apiresponse.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to get task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apiresponse.Error(apiresponse.MsgInternalError, lang),
		)
		return
	}

	c.JSON(http.StatusOK, apiresponse.Task(apiresponse.MsgTaskRetrieved, lang, mapper.ToTaskItem(task)))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondBindingError(c, lang, err)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(
			http.StatusUnprocessableEntity,
			apiresponse.Error(apiresponse.MsgInvalidTaskPayload, lang),
		)
		return
	}

	patch, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusUnprocessableEntity,
			apiresponse.Error(apiresponse.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apiresponse.Error(apiresponse.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to update task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apiresponse.Error(apiresponse.MsgInternalError, lang),
		)
		return
	}

	c.JSON(http.StatusOK, apiresponse.Task(apiresponse.MsgTaskUpdated, lang, mapper.ToTaskItem(task)))
}

func (h *TaskHandler) MarkAsDone(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apiresponse.Error(apiresponse.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to complete task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apiresponse.Error(apiresponse.MsgInternalError, lang),
		)
		return
	}

	c.JSON(http.StatusOK, apiresponse.Task(apiresponse.MsgTaskCompleted, lang, mapper.ToTaskItem(task)))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apiresponse.Error(apiresponse.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to delete task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apiresponse.Error(apiresponse.MsgInternalError, lang),
		)
		return
	}

	c.JSON(http.StatusOK, apiresponse.Success(apiresponse.MsgTaskDeleted, lang))
}

func (h *TaskHandler) ListAllTasks(c *gin.Context) {
	h.respondTaskList(c, apiresponse.MsgAllTasksRetrieved, h.taskService.GetAllTasks)
}

func (h *TaskHandler) ListActiveTasks(c *gin.Context) {
	h.respondTaskList(c, apiresponse.MsgActiveTasksRetrieved, h.taskService.GetActiveTasks)
}

func (h *TaskHandler) ListCompletedTasks(c *gin.Context) {
	h.respondTaskList(c, apiresponse.MsgCompletedTasksRetrieved, h.taskService.GetCompletedTasks)
}

func (h *TaskHandler) ListRecentTasks(c *gin.Context) {
	h.respondTaskList(c, apiresponse.MsgRecentTasksRetrieved, h.taskService.GetRecentTasks)
}

func (h *TaskHandler) GetProgress(c *gin.Context) {
	lang := middleware.GetLang(c)

	progress, err := h.taskService.GetProgress(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to compute progress", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apiresponse.Error(apiresponse.MsgInternalError, lang),
		)
		return
	}

	c.JSON(http.StatusOK, apiresponse.Stats(apiresponse.MsgProgressRetrieved, lang, mapper.ToProgressStats(progress)))
}

func (h *TaskHandler) respondTaskList(
	c *gin.Context,
	msgKey string,
	list func(ctx context.Context) ([]domain.Task, error),
) {
	lang := middleware.GetLang(c)

	tasks, err := list(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list tasks", zap.String("list", msgKey), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apiresponse.Error(apiresponse.MsgInternalError, lang),
		)
		return
	}

	items := mapper.ToTaskItems(tasks)
	c.JSON(http.StatusOK, apiresponse.Collection(msgKey, lang, items, len(items)))
}

func parseTaskID(c *gin.Context, lang string) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apiresponse.Error(apiresponse.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return taskID, true
}

// respondBindingError maps a binding failure to a 422: field-keyed errors when
// the validator produced them, a generic payload error otherwise.
func respondBindingError(c *gin.Context, lang string, err error) {
	fieldErrors := validation.FieldErrors(err)
	if len(fieldErrors) == 0 {
		c.JSON(
			http.StatusUnprocessableEntity,
			apiresponse.Error(apiresponse.MsgInvalidTaskPayload, lang),
		)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, apiresponse.ValidationError(lang, fieldErrors))
}
