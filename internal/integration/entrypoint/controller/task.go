package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/usecase/task"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
	"github.com/goalguard/backend/internal/integration/entrypoint/dto"
	"github.com/goalguard/backend/internal/integration/entrypoint/middleware"
)

// TaskController handles sponsored task endpoints.
type TaskController struct {
	createUseCase   *task.CreateTaskUseCase
	listUseCase     *task.ListTasksUseCase
	listUserUseCase *task.ListUserTasksUseCase
	startUseCase    *task.StartTaskUseCase
	submitUseCase   *task.SubmitTaskUseCase
	reviewUseCase   *task.ReviewTaskUseCase
}

// NewTaskController creates a new task controller instance.
func NewTaskController(
	createUseCase *task.CreateTaskUseCase,
	listUseCase *task.ListTasksUseCase,
	listUserUseCase *task.ListUserTasksUseCase,
	startUseCase *task.StartTaskUseCase,
	submitUseCase *task.SubmitTaskUseCase,
	reviewUseCase *task.ReviewTaskUseCase,
) *TaskController {
	return &TaskController{
		createUseCase:   createUseCase,
		listUseCase:     listUseCase,
		listUserUseCase: listUserUseCase,
		startUseCase:    startUseCase,
		submitUseCase:   submitUseCase,
		reviewUseCase:   reviewUseCase,
	}
}

// CreateTask handles POST /admin/tasks requests.
func (c *TaskController) CreateTask(ctx *gin.Context) {
	var req dto.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTaskFields),
		})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingTaskFields),
		})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingTaskFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), task.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		SponsorName: req.SponsorName,
		Type:        entity.TaskType(req.Type),
		Requirements: entity.TaskRequirements{
			MinTimeMinutes: req.MinTimeMinutes,
			SkillLevel:     entity.SkillLevel(req.SkillLevel),
		},
		Reward: entity.TaskReward{
			Entries: req.Entries,
		},
		Schedule: entity.TaskSchedule{
			StartDate:      startDate,
			EndDate:        endDate,
			MaxCompletions: req.MaxCompletions,
		},
		Activate: req.Activate,
	})
	if err != nil {
		c.handleTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTaskResponse(output.Task))
}

// ListTasks handles GET /tasks requests.
func (c *TaskController) ListTasks(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), task.ListTasksInput{
		UserID: userID,
	})
	if err != nil {
		c.handleTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaskListResponse(output.Tasks))
}

// ListUserTasks handles GET /tasks/me requests.
func (c *TaskController) ListUserTasks(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	output, err := c.listUserUseCase.Execute(ctx.Request.Context(), task.ListUserTasksInput{
		UserID: userID,
	})
	if err != nil {
		c.handleTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompletionListResponse(output.Completions))
}

// StartTask handles POST /tasks/:id/start requests.
func (c *TaskController) StartTask(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid task ID",
			Code:  string(domainerror.ErrCodeTaskNotFound),
		})
		return
	}

	output, err := c.startUseCase.Execute(ctx.Request.Context(), task.StartTaskInput{
		UserID: userID,
		TaskID: taskID,
	})
	if err != nil {
		c.handleTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCompletionResponse(output.Completion))
}

// SubmitTask handles POST /tasks/:id/submit requests.
func (c *TaskController) SubmitTask(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid task ID",
			Code:  string(domainerror.ErrCodeTaskNotFound),
		})
		return
	}

	var req dto.SubmitTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTaskFields),
		})
		return
	}

	output, err := c.submitUseCase.Execute(ctx.Request.Context(), task.SubmitTaskInput{
		UserID:           userID,
		TaskID:           taskID,
		Answers:          dto.ToTaskAnswers(req.Answers),
		TimeSpentMinutes: req.TimeSpentMinutes,
	})
	if err != nil {
		c.handleTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompletionResponse(output.Completion))
}

// ReviewTask handles POST /admin/completions/:id/review requests.
func (c *TaskController) ReviewTask(ctx *gin.Context) {
	completionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid completion ID",
			Code:  string(domainerror.ErrCodeCompletionNotFound),
		})
		return
	}

	var req dto.ReviewTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTaskFields),
		})
		return
	}

	output, err := c.reviewUseCase.Execute(ctx.Request.Context(), task.ReviewTaskInput{
		CompletionID: completionID,
		Approve:      req.Approve,
	})
	if err != nil {
		c.handleTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompletionResponse(output.Completion))
}

func (c *TaskController) unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// handleTaskError handles task errors and returns appropriate HTTP responses.
func (c *TaskController) handleTaskError(ctx *gin.Context, err error) {
	var taskErr *domainerror.TaskError
	if errors.As(err, &taskErr) {
		statusCode := c.getStatusCodeForTaskError(taskErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: taskErr.Message,
			Code:  string(taskErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTaskError maps task error codes to HTTP status codes.
func (c *TaskController) getStatusCodeForTaskError(code domainerror.TaskErrorCode) int {
	switch code {
	case domainerror.ErrCodeTaskNotFound,
		domainerror.ErrCodeCompletionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRequirementsNotMet,
		domainerror.ErrCodeMissingTaskFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeTaskNotOpen,
		domainerror.ErrCodeTaskAlreadyCompleted,
		domainerror.ErrCodeInvalidCompletionState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
