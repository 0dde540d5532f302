//go:build integration

package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/goalguard/backend/internal/application/usecase/auth"
	"github.com/goalguard/backend/internal/application/usecase/draw"
	"github.com/goalguard/backend/internal/application/usecase/goal"
	"github.com/goalguard/backend/internal/application/usecase/task"
	"github.com/goalguard/backend/internal/application/usecase/user"
	"github.com/goalguard/backend/internal/infra/server/router"
	"github.com/goalguard/backend/internal/integration/adapters"
	"github.com/goalguard/backend/internal/integration/email"
	"github.com/goalguard/backend/internal/integration/entrypoint/controller"
	"github.com/goalguard/backend/internal/integration/entrypoint/middleware"
	"github.com/goalguard/backend/internal/integration/persistence"
	"github.com/goalguard/backend/internal/integration/persistence/model"
	"github.com/goalguard/backend/test/integration/mock"
)

const testJWTSecret = "integration-test-secret"

var (
	serverOnce sync.Once
	serverURL  string
	dbMock     *mock.Db
	apiMock    *mock.ApiMock
	testRedis  *redis.Client
)

// testContext carries the state of a single scenario: the seeded records, the
// issued tokens and the last HTTP response.
type testContext struct {
	client       *http.Client
	headers      map[string]string
	lastStatus   int
	lastBody     any
	accessToken  string
	refreshToken string

	currentUserID       uuid.UUID
	currentGoalID       uuid.UUID
	currentTaskID       uuid.UUID
	currentDrawID       uuid.UUID
	currentCompletionID uuid.UUID
}

func newTestContext() *testContext {
	return &testContext{
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: map[string]string{},
	}
}

// startServer wires the full application against the in-memory database, the
// in-memory redis and the fake payment gateway, then serves it on a free port.
// It runs once for the whole suite.
func startServer() {
	serverOnce.Do(func() {
		dbMock = mock.NewDb("goalguard", map[string]any{
			"users":            model.UserModel{},
			"refresh_tokens":   model.RefreshTokenModel{},
			"savings_goals":    model.SavingsGoalModel{},
			"transactions":     model.TransactionModel{},
			"ad_tasks":         model.AdTaskModel{},
			"task_completions": model.TaskCompletionModel{},
			"draws":            model.DrawModel{},
			"email_queue":      model.EmailQueueModel{},
		})
		testRedis = mock.NewRedis()

		apiMock = mock.NewApiServer()
		apiMock.Start()
		setGatewayDefaults()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		userRepo := persistence.NewUserRepository(dbMock.DbConn)
		tokenRepo := persistence.NewTokenRepository(dbMock.DbConn)
		goalRepo := persistence.NewGoalRepository(dbMock.DbConn)
		transactionRepo := persistence.NewTransactionRepository(dbMock.DbConn)
		taskRepo := persistence.NewTaskRepository(dbMock.DbConn)
		completionRepo := persistence.NewCompletionRepository(dbMock.DbConn)
		drawRepo := persistence.NewDrawRepository(dbMock.DbConn)
		emailQueueRepo := persistence.NewEmailQueueRepository(dbMock.DbConn)

		clock := adapters.NewSystemClock()
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
		idempotencyStore := adapters.NewRedisIdempotencyStore(testRedis)
		gateway := adapters.NewModulrGateway(apiMock.GetUrl(), "test-key", "test-secret", idempotencyStore, logger)
		notifier := email.NewService(emailQueueRepo, "http://localhost:5173")

		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, gateway, notifier, clock, logger)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
		refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

		getProfileUseCase := user.NewGetProfileUseCase(userRepo)
		updateTierUseCase := user.NewUpdateTierUseCase(userRepo)

		createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, userRepo, gateway, clock, logger)
		listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, clock)
		getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, clock)
		contributeUseCase := goal.NewContributeUseCase(goalRepo, userRepo, gateway, notifier, clock, logger)
		withdrawUseCase := goal.NewWithdrawUseCase(goalRepo, userRepo, gateway, clock)
		listTransactionsUseCase := goal.NewListTransactionsUseCase(goalRepo, transactionRepo)

		createTaskUseCase := task.NewCreateTaskUseCase(taskRepo)
		listTasksUseCase := task.NewListTasksUseCase(taskRepo, completionRepo, clock)
		listUserTasksUseCase := task.NewListUserTasksUseCase(completionRepo)
		startTaskUseCase := task.NewStartTaskUseCase(taskRepo, completionRepo, clock)
		submitTaskUseCase := task.NewSubmitTaskUseCase(taskRepo, completionRepo, clock)
		reviewTaskUseCase := task.NewReviewTaskUseCase(completionRepo, userRepo, clock)

		eligibilityUseCase := draw.NewEligibilityUseCase(completionRepo)
		createDrawUseCase := draw.NewCreateDrawUseCase(drawRepo)
		listDrawsUseCase := draw.NewListDrawsUseCase(drawRepo, clock)
		getEntriesUseCase := draw.NewGetEntriesUseCase(drawRepo, eligibilityUseCase)

		healthController := controller.NewHealthController(func() bool { return true })
		authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
		userController := controller.NewUserController(getProfileUseCase, updateTierUseCase)
		goalController := controller.NewGoalController(createGoalUseCase, listGoalsUseCase, getGoalUseCase, contributeUseCase, withdrawUseCase, listTransactionsUseCase)
		taskController := controller.NewTaskController(createTaskUseCase, listTasksUseCase, listUserTasksUseCase, startTaskUseCase, submitTaskUseCase, reviewTaskUseCase)
		drawController := controller.NewDrawController(createDrawUseCase, listDrawsUseCase, getEntriesUseCase)

		loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

		r := router.NewRouter(
			healthController,
			authController,
			userController,
			goalController,
			taskController,
			drawController,
			loginRateLimiter,
			authMiddleware,
		)
		engine := r.Setup("test")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			panic(fmt.Sprintf("failed to open test listener: %v", err))
		}
		serverURL = "http://" + listener.Addr().String()

		srv := &http.Server{Handler: engine}
		go func() {
			if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
				panic(fmt.Sprintf("test server stopped: %v", err))
			}
		}()
	})
}

// setGatewayDefaults installs catch-all responses for the fake payment
// gateway so onboarding and transfers succeed unless a scenario overrides
// them.
func setGatewayDefaults() {
	apiMock.SetResponse(-1, http.MethodPost, "/api/customers", http.StatusCreated, map[string]any{
		"id": "C-TEST",
	})
	apiMock.SetResponse(-1, http.MethodPost, "/api/accounts", http.StatusCreated, map[string]any{
		"id": "A-TEST",
	})
	apiMock.SetResponse(-1, http.MethodPost, "/api/transfers", http.StatusCreated, map[string]any{
		"id":     "T-TEST",
		"status": "ACCEPTED",
	})
}

func resetGateway() {
	apiMock.ClearResponses(http.MethodPost, "/api/customers")
	apiMock.ClearResponses(http.MethodPost, "/api/accounts")
	apiMock.ClearResponses(http.MethodPost, "/api/transfers")
	setGatewayDefaults()
}

func (t *testContext) seedUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	userModel := model.UserModel{
		ID:               uuid.New(),
		Email:            email,
		Name:             "Test User",
		PasswordHash:     string(hash),
		Tier:             "basic",
		ModulrCustomerID: "C-SEEDED",
		PrimaryAccountID: "A-PRIMARY",
		TotalSaved:       decimal.Zero,
		TotalPrizesWon:   decimal.Zero,
		TermsAcceptedAt:  now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := dbMock.DbConn.Create(&userModel).Error; err != nil {
		return err
	}

	t.currentUserID = userModel.ID
	return nil
}

func (t *testContext) loginAs(email string) error {
	var userModel model.UserModel
	if err := dbMock.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
		return fmt.Errorf("user %q was not seeded: %w", email, err)
	}
	t.currentUserID = userModel.ID

	access, err := generateToken(userModel.ID, userModel.Email, "access", 15*time.Minute)
	if err != nil {
		return err
	}
	refresh, err := generateToken(userModel.ID, userModel.Email, "refresh", 7*24*time.Hour)
	if err != nil {
		return err
	}

	refreshModel := model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     refresh,
		UserID:    userModel.ID,
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	if err := dbMock.DbConn.Create(&refreshModel).Error; err != nil {
		return err
	}

	t.accessToken = access
	t.refreshToken = refresh
	t.headers["Authorization"] = "Bearer " + access
	return nil
}

func generateToken(userID uuid.UUID, email, tokenType string, duration time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      email,
		"token_type": tokenType,
		"exp":        now.Add(duration).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
		"iss":        "goalguard",
		"sub":        userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

// replacePlaceholders swaps {{...}} markers in paths and bodies for the IDs
// and tokens captured while seeding the scenario.
func (t *testContext) replacePlaceholders(s string) string {
	replacements := map[string]string{
		"{{user_id}}":       t.currentUserID.String(),
		"{{goal_id}}":       t.currentGoalID.String(),
		"{{task_id}}":       t.currentTaskID.String(),
		"{{draw_id}}":       t.currentDrawID.String(),
		"{{completion_id}}": t.currentCompletionID.String(),
		"{{access_token}}":  t.accessToken,
		"{{refresh_token}}": t.refreshToken,
	}
	for marker, value := range replacements {
		s = strings.ReplaceAll(s, marker, value)
	}
	return s
}

func (t *testContext) executeRequest(method, path string, body []byte) error {
	path = t.replacePlaceholders(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, serverURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.lastStatus = resp.StatusCode
	t.lastBody = nil
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &t.lastBody); err != nil {
			return fmt.Errorf("response is not valid JSON: %w", err)
		}
	}

	t.captureIDs()
	return nil
}

// captureIDs remembers identifiers returned by the API so later steps can
// reference the records they created.
func (t *testContext) captureIDs() {
	body, ok := t.lastBody.(map[string]any)
	if !ok {
		return
	}

	if token, ok := body["access_token"].(string); ok {
		t.accessToken = token
		t.headers["Authorization"] = "Bearer " + token
	}
	if token, ok := body["refresh_token"].(string); ok {
		t.refreshToken = token
	}
	if id := extractID(body, "target_amount"); id != uuid.Nil {
		t.currentGoalID = id
	}
	if id := extractID(body, "sponsor_name"); id != uuid.Nil {
		t.currentTaskID = id
	}
	if id := extractID(body, "prize_pool"); id != uuid.Nil {
		t.currentDrawID = id
	}
	if id := extractID(body, "entry_value"); id != uuid.Nil {
		t.currentCompletionID = id
	}
}

// extractID returns the top-level id when the body carries the given sibling
// field, which identifies the resource kind.
func extractID(body map[string]any, siblingField string) uuid.UUID {
	if _, ok := body[siblingField]; !ok {
		return uuid.Nil
	}
	raw, ok := body["id"].(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// getFieldValue walks a dot separated path through the decoded JSON body.
// Numeric segments index into arrays.
func getFieldValue(body any, path string) (any, error) {
	current := body
	for _, segment := range strings.Split(path, ".") {
		switch value := current.(type) {
		case map[string]any:
			next, ok := value[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in path %q", segment, path)
			}
			current = next
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("expected numeric index at %q in path %q", segment, path)
			}
			if index < 0 || index >= len(value) {
				return nil, fmt.Errorf("index %d out of range at path %q", index, path)
			}
			current = value[index]
		default:
			return nil, fmt.Errorf("cannot descend into %T at %q in path %q", current, segment, path)
		}
	}
	return current, nil
}

// countRows counts the rows in a table matching an optional column filter.
// Numeric and boolean values are compared through casts so the sqlite storage
// representation does not leak into the assertions.
func countRows(table, column, value string) (int64, error) {
	query := dbMock.DbConn.Table(table)
	if column != "" {
		switch {
		case value == "true":
			query = query.Where(column+" = ?", 1)
		case value == "false":
			query = query.Where(column+" = ?", 0)
		case isNumeric(value):
			query = query.Where("CAST("+column+" AS REAL) = CAST(? AS REAL)", value)
		default:
			query = query.Where(column+" = ?", value)
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
