//go:build integration

package steps

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/integration/persistence/model"
	"github.com/goalguard/backend/test/integration/mock"
)

// InitializeScenario wires the step definitions and resets all shared state
// before each scenario.
func InitializeScenario(sc *godog.ScenarioContext) {
	t := newTestContext()

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		startServer()

		if err := dbMock.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(testRedis); err != nil {
			return ctx, err
		}
		resetGateway()

		*t = *newTestContext()
		return ctx, nil
	})

	sc.Step(`^the server is running$`, t.theServerIsRunning)

	sc.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, t.aRegisteredUser)
	sc.Step(`^the user "([^"]*)" has tier "([^"]*)"$`, t.theUserHasTier)
	sc.Step(`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs)

	sc.Step(`^the user has an active goal "([^"]*)" with balance "([^"]*)" and target "([^"]*)"$`, t.theUserHasAnActiveGoal)
	sc.Step(`^the goal is unlocked$`, t.theGoalIsUnlocked)

	sc.Step(`^an active task "([^"]*)" from sponsor "([^"]*)" granting (\d+) entries$`, t.anActiveTask)
	sc.Step(`^I have started the task$`, t.iHaveStartedTheTask)
	sc.Step(`^I have an approved completion for the task$`, t.iHaveAnApprovedCompletion)

	sc.Step(`^an upcoming draw "([^"]*)" with prize pool "([^"]*)" requiring (\d+) tasks?$`, t.anUpcomingDraw)

	sc.Step(`^the payment gateway rejects transfers with status (\d+)$`, t.theGatewayRejectsTransfers)

	sc.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	sc.Step(`^I send a "([^"]*)" request to "([^"]*)" with the body:$`, t.iSendARequestToWithBody)

	sc.Step(`^the response status code should be (\d+)$`, t.theResponseStatusCodeShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	sc.Step(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)

	sc.Step(`^the db should contain (\d+) rows? in the table "([^"]*)"$`, t.theDbShouldContainRows)
	sc.Step(`^the db table "([^"]*)" should contain a row with "([^"]*)" = "([^"]*)"$`, t.theDbTableShouldContainARowWith)
	sc.Step(`^the db table "([^"]*)" should not contain a row with "([^"]*)" = "([^"]*)"$`, t.theDbTableShouldNotContainARowWith)
}

func (t *testContext) theServerIsRunning() error {
	resp, err := t.client.Get(serverURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) aRegisteredUser(email, password string) error {
	return t.seedUser(email, password)
}

func (t *testContext) theUserHasTier(email, tier string) error {
	return dbMock.DbConn.Model(&model.UserModel{}).
		Where("email = ?", email).
		Update("tier", tier).Error
}

func (t *testContext) iAmLoggedInAs(email string) error {
	return t.loginAs(email)
}

func (t *testContext) theUserHasAnActiveGoal(name, balance, target string) error {
	currentAmount, err := decimal.NewFromString(balance)
	if err != nil {
		return err
	}
	targetAmount, err := decimal.NewFromString(target)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	goalModel := model.SavingsGoalModel{
		ID:                    uuid.New(),
		UserID:                t.currentUserID,
		Name:                  name,
		TargetAmount:          targetAmount,
		CurrentAmount:         currentAmount,
		Category:              "holiday",
		StartDate:             now.AddDate(0, 0, -10),
		EndDate:               now.AddDate(0, 3, 0),
		Status:                "active",
		AccountID:             "A-GOAL",
		AllowedWithdrawalDate: now.AddDate(0, 0, 30),
		ProgressPercentage:    decimal.Zero,
		MonthlyTarget:         decimal.Zero,
		PlanAmount:            decimal.Zero,
		Version:               1,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := dbMock.DbConn.Create(&goalModel).Error; err != nil {
		return err
	}

	t.currentGoalID = goalModel.ID
	return nil
}

func (t *testContext) theGoalIsUnlocked() error {
	return dbMock.DbConn.Model(&model.SavingsGoalModel{}).
		Where("id = ?", t.currentGoalID).
		Update("allowed_withdrawal_date", time.Now().UTC().AddDate(0, 0, -1)).Error
}

func (t *testContext) anActiveTask(title, sponsor string, entries int) error {
	now := time.Now().UTC()
	taskModel := model.AdTaskModel{
		ID:             uuid.New(),
		Title:          title,
		Description:    "Complete the sponsor activity",
		SponsorName:    sponsor,
		Type:           "survey",
		MinTimeMinutes: 5,
		SkillLevel:     "beginner",
		RewardEntries:  entries,
		StartDate:      now.AddDate(0, 0, -1),
		EndDate:        now.AddDate(0, 0, 7),
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := dbMock.DbConn.Create(&taskModel).Error; err != nil {
		return err
	}

	t.currentTaskID = taskModel.ID
	return nil
}

func (t *testContext) iHaveStartedTheTask() error {
	now := time.Now().UTC()
	completion := model.TaskCompletionModel{
		ID:        uuid.New(),
		UserID:    t.currentUserID,
		TaskID:    t.currentTaskID,
		Status:    "in_progress",
		Answers:   "[]",
		StartedAt: now,
		CreatedAt: now,
	}
	if err := dbMock.DbConn.Create(&completion).Error; err != nil {
		return err
	}

	t.currentCompletionID = completion.ID
	return nil
}

func (t *testContext) iHaveAnApprovedCompletion() error {
	if err := t.iHaveStartedTheTask(); err != nil {
		return err
	}

	var taskModel model.AdTaskModel
	if err := dbMock.DbConn.Where("id = ?", t.currentTaskID).First(&taskModel).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	return dbMock.DbConn.Model(&model.TaskCompletionModel{}).
		Where("id = ?", t.currentCompletionID).
		Updates(map[string]any{
			"status":             "approved",
			"time_spent_minutes": taskModel.MinTimeMinutes,
			"entry_value":        taskModel.RewardEntries,
			"completed_at":       now,
			"reviewed_at":        now,
		}).Error
}

func (t *testContext) anUpcomingDraw(name, prizePool string, minimumTasks int) error {
	pool, err := decimal.NewFromString(prizePool)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	drawModel := model.DrawModel{
		ID:             uuid.New(),
		Kind:           "weekly",
		Name:           name,
		PrizePool:      pool,
		EntryStart:     now.AddDate(0, 0, -3),
		EntryEnd:       now.AddDate(0, 0, 3),
		DrawDate:       now.AddDate(0, 0, 4),
		Status:         "upcoming",
		MinimumTasks:   minimumTasks,
		PrizeStructure: "{}",
		Winners:        "[]",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := dbMock.DbConn.Create(&drawModel).Error; err != nil {
		return err
	}

	t.currentDrawID = drawModel.ID
	return nil
}

func (t *testContext) theGatewayRejectsTransfers(status int) error {
	apiMock.SetResponse(0, http.MethodPost, "/api/transfers", status, map[string]any{
		"message": "transfer rejected",
	})
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, path, []byte(t.replacePlaceholders(body.Content)))
}

func (t *testContext) theResponseStatusCodeShouldBe(expected int) error {
	if t.lastStatus != expected {
		return fmt.Errorf("expected status %d but got %d (body: %v)", expected, t.lastStatus, t.lastBody)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(path, expected string) error {
	value, err := getFieldValue(t.lastBody, path)
	if err != nil {
		return err
	}

	expected = t.replacePlaceholders(expected)
	actual := formatValue(value)
	if actual != expected {
		return fmt.Errorf("expected field %q to be %q but got %q", path, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(path string) error {
	_, err := getFieldValue(t.lastBody, path)
	return err
}

func (t *testContext) theDbShouldContainRows(expected int, table string) error {
	count, err := countRows(table, "", "")
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %q but found %d", expected, table, count)
	}
	return nil
}

func (t *testContext) theDbTableShouldContainARowWith(table, column, value string) error {
	count, err := countRows(table, column, t.replacePlaceholders(value))
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("expected a row in %q with %s = %q but found none", table, column, value)
	}
	return nil
}

func (t *testContext) theDbTableShouldNotContainARowWith(table, column, value string) error {
	count, err := countRows(table, column, t.replacePlaceholders(value))
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected no row in %q with %s = %q but found %d", table, column, value, count)
	}
	return nil
}

// formatValue renders JSON scalars the way the feature files write them.
// Numbers decoded as float64 print without a trailing ".0" when whole.
func formatValue(value any) string {
	switch v := value.(type) {
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}
