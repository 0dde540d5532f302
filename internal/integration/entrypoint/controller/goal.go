package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/usecase/goal"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
	"github.com/goalguard/backend/internal/integration/entrypoint/dto"
	"github.com/goalguard/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	createUseCase           *goal.CreateGoalUseCase
	listUseCase             *goal.ListGoalsUseCase
	getUseCase              *goal.GetGoalUseCase
	contributeUseCase       *goal.ContributeUseCase
	withdrawUseCase         *goal.WithdrawUseCase
	listTransactionsUseCase *goal.ListTransactionsUseCase
	clock                   func() time.Time
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	createUseCase *goal.CreateGoalUseCase,
	listUseCase *goal.ListGoalsUseCase,
	getUseCase *goal.GetGoalUseCase,
	contributeUseCase *goal.ContributeUseCase,
	withdrawUseCase *goal.WithdrawUseCase,
	listTransactionsUseCase *goal.ListTransactionsUseCase,
) *GoalController {
	return &GoalController{
		createUseCase:           createUseCase,
		listUseCase:             listUseCase,
		getUseCase:              getUseCase,
		contributeUseCase:       contributeUseCase,
		withdrawUseCase:         withdrawUseCase,
		listTransactionsUseCase: listTransactionsUseCase,
		clock:                   func() time.Time { return time.Now().UTC() },
	}
}

// CreateGoal handles POST /goals requests.
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target amount",
			Code:  string(domainerror.ErrCodeInvalidTargetAmount),
		})
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidEndDate),
		})
		return
	}

	input := goal.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: target,
		Category:     entity.GoalCategory(req.Category),
		EndDate:      endDate,
	}
	if req.Plan != nil {
		planAmount, err := decimal.NewFromString(req.Plan.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid plan amount",
				Code:  string(domainerror.ErrCodeInvalidAmount),
			})
			return
		}
		input.Plan = entity.ContributionPlan{
			Frequency: entity.ContributionFrequency(req.Plan.Frequency),
			Amount:    planAmount,
		}
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal, c.clock()))
}

// ListGoals handles GET /goals requests.
func (c *GoalController) ListGoals(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals, c.clock()))
}

// GetGoal handles GET /goals/:id requests.
func (c *GoalController) GetGoal(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID",
			Code:  string(domainerror.ErrCodeGoalNotFound),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal, c.clock()))
}

// Contribute handles POST /goals/:id/contributions requests.
func (c *GoalController) Contribute(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID",
			Code:  string(domainerror.ErrCodeGoalNotFound),
		})
		return
	}

	var req dto.ContributeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	output, err := c.contributeUseCase.Execute(ctx.Request.Context(), goal.ContributeInput{
		UserID:          userID,
		GoalID:          goalID,
		Amount:          amount,
		SourceAccountID: req.SourceAccountID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ContributeResponse{
		Goal:        dto.ToGoalResponse(output.Goal, c.clock()),
		Transaction: dto.ToTransactionResponse(output.Transaction),
	})
}

// Withdraw handles POST /goals/:id/withdrawals requests.
func (c *GoalController) Withdraw(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID",
			Code:  string(domainerror.ErrCodeGoalNotFound),
		})
		return
	}

	var req dto.WithdrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	output, err := c.withdrawUseCase.Execute(ctx.Request.Context(), goal.WithdrawInput{
		UserID:      userID,
		GoalID:      goalID,
		Amount:      amount,
		IsEmergency: req.IsEmergency,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.WithdrawResponse{
		Goal:         dto.ToGoalResponse(output.Goal, c.clock()),
		NetAmount:    output.NetAmount.StringFixed(2),
		Fee:          output.Fee.StringFixed(2),
		Transactions: dto.ToTransactionListResponse(output.Transactions),
	})
}

// ListTransactions handles GET /goals/:id/transactions requests.
func (c *GoalController) ListTransactions(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID",
			Code:  string(domainerror.ErrCodeGoalNotFound),
		})
		return
	}

	output, err := c.listTransactionsUseCase.Execute(ctx.Request.Context(), goal.ListTransactionsInput{
		UserID: userID,
		GoalID: &goalID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"transactions": dto.ToTransactionListResponse(output.Transactions),
	})
}

// ListUserTransactions handles GET /transactions requests.
func (c *GoalController) ListUserTransactions(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	output, err := c.listTransactionsUseCase.Execute(ctx.Request.Context(), goal.ListTransactionsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"transactions": dto.ToTransactionListResponse(output.Transactions),
	})
}

func (c *GoalController) unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		statusCode := c.getStatusCodeForGoalError(goalErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	var gwErr *domainerror.GatewayError
	if errors.As(err, &gwErr) {
		statusCode := http.StatusBadGateway
		if gwErr.Code == domainerror.ErrCodeGatewayRejected {
			statusCode = http.StatusUnprocessableEntity
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: gwErr.Message,
			Code:  string(gwErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func (c *GoalController) getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidEndDate,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeGoalNotActive,
		domainerror.ErrCodeGoalLocked,
		domainerror.ErrCodeInsufficientFunds,
		domainerror.ErrCodeConcurrentUpdate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
