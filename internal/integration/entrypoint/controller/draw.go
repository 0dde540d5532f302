package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/usecase/draw"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
	"github.com/goalguard/backend/internal/integration/entrypoint/dto"
	"github.com/goalguard/backend/internal/integration/entrypoint/middleware"
)

// DrawController handles prize draw endpoints.
type DrawController struct {
	createUseCase     *draw.CreateDrawUseCase
	listUseCase       *draw.ListDrawsUseCase
	getEntriesUseCase *draw.GetEntriesUseCase
}

// NewDrawController creates a new draw controller instance.
func NewDrawController(
	createUseCase *draw.CreateDrawUseCase,
	listUseCase *draw.ListDrawsUseCase,
	getEntriesUseCase *draw.GetEntriesUseCase,
) *DrawController {
	return &DrawController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		getEntriesUseCase: getEntriesUseCase,
	}
}

// CreateDraw handles POST /admin/draws requests.
func (c *DrawController) CreateDraw(ctx *gin.Context) {
	var req dto.CreateDrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingDrawFields),
		})
		return
	}

	prizePool, err := decimal.NewFromString(req.PrizePool)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid prize pool",
			Code:  string(domainerror.ErrCodeInvalidPrizePool),
		})
		return
	}

	entryStart, err := time.Parse(time.RFC3339, req.EntryStart)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry start, expected RFC 3339 timestamp",
			Code:  string(domainerror.ErrCodeInvalidEntryPeriod),
		})
		return
	}
	entryEnd, err := time.Parse(time.RFC3339, req.EntryEnd)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry end, expected RFC 3339 timestamp",
			Code:  string(domainerror.ErrCodeInvalidEntryPeriod),
		})
		return
	}
	drawDate, err := time.Parse(time.RFC3339, req.DrawDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid draw date, expected RFC 3339 timestamp",
			Code:  string(domainerror.ErrCodeInvalidEntryPeriod),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), draw.CreateDrawInput{
		Kind:         entity.DrawKind(req.Kind),
		Name:         req.Name,
		PrizePool:    prizePool,
		EntryStart:   entryStart,
		EntryEnd:     entryEnd,
		DrawDate:     drawDate,
		MinimumTasks: req.MinimumTasks,
	})
	if err != nil {
		c.handleDrawError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDrawResponse(output.Draw))
}

// ListDraws handles GET /draws requests.
func (c *DrawController) ListDraws(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), draw.ListDrawsInput{
		PastLimit: 10,
	})
	if err != nil {
		c.handleDrawError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDrawListResponse(output.Current, output.Past))
}

// GetEntries handles GET /draws/:id/entries requests.
func (c *DrawController) GetEntries(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	drawID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid draw ID",
			Code:  string(domainerror.ErrCodeDrawNotFound),
		})
		return
	}

	output, err := c.getEntriesUseCase.Execute(ctx.Request.Context(), draw.GetEntriesInput{
		UserID: userID,
		DrawID: drawID,
	})
	if err != nil {
		c.handleDrawError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EntriesResponse{
		DrawID:         drawID.String(),
		TotalEntries:   output.TotalEntries,
		TasksCompleted: output.TasksCompleted,
		MinimumTasks:   output.MinimumTasks,
		Eligible:       output.Eligible,
	})
}

// handleDrawError handles draw errors and returns appropriate HTTP responses.
func (c *DrawController) handleDrawError(ctx *gin.Context, err error) {
	var drawErr *domainerror.DrawError
	if errors.As(err, &drawErr) {
		statusCode := c.getStatusCodeForDrawError(drawErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: drawErr.Message,
			Code:  string(drawErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForDrawError maps draw error codes to HTTP status codes.
func (c *DrawController) getStatusCodeForDrawError(code domainerror.DrawErrorCode) int {
	switch code {
	case domainerror.ErrCodeDrawNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPrizePool,
		domainerror.ErrCodeInvalidEntryPeriod,
		domainerror.ErrCodeMissingDrawFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeDrawAlreadyClaimed,
		domainerror.ErrCodeDrawNotDue:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
