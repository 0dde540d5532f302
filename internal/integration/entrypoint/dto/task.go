package dto

import (
	"time"

	"github.com/goalguard/backend/internal/domain/entity"
)

// CreateTaskRequest represents the request body for creating a sponsored task.
type CreateTaskRequest struct {
	Title          string `json:"title" binding:"required,min=1,max=200"`
	Description    string `json:"description" binding:"required"`
	SponsorName    string `json:"sponsor_name" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=survey product_feedback creative_challenge educational market_research"`
	MinTimeMinutes int    `json:"min_time_minutes" binding:"omitempty,gte=0"`
	SkillLevel     string `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Entries        int    `json:"entries" binding:"omitempty,gte=1"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	MaxCompletions int    `json:"max_completions" binding:"omitempty,gte=0"`
	Activate       bool   `json:"activate"`
}

// TaskAnswerRequest holds one answer in a task submission.
type TaskAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// SubmitTaskRequest represents the request body for submitting a started task.
type SubmitTaskRequest struct {
	Answers          []TaskAnswerRequest `json:"answers" binding:"required,min=1,dive"`
	TimeSpentMinutes int                 `json:"time_spent_minutes" binding:"required,gte=0"`
}

// ReviewTaskRequest represents the request body for reviewing a submission.
type ReviewTaskRequest struct {
	Approve bool `json:"approve"`
}

// TaskResponse represents a sponsored task in API responses.
type TaskResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	SponsorName    string  `json:"sponsor_name"`
	Type           string  `json:"type"`
	MinTimeMinutes int     `json:"min_time_minutes"`
	SkillLevel     string  `json:"skill_level"`
	Entries        int     `json:"entries"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	MaxCompletions int     `json:"max_completions"`
	Status         string  `json:"status"`
	Completions    int     `json:"completions"`
	AvgTimeMinutes float64 `json:"avg_time_minutes"`
}

// TaskListResponse represents the response for listing open tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// CompletionResponse represents one user's task completion in API responses.
type CompletionResponse struct {
	ID               string     `json:"id"`
	TaskID           string     `json:"task_id"`
	Status           string     `json:"status"`
	TimeSpentMinutes int        `json:"time_spent_minutes"`
	EntryValue       int        `json:"entry_value"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
}

// CompletionListResponse represents the response for listing completions.
type CompletionListResponse struct {
	Completions []CompletionResponse `json:"completions"`
}

// ToTaskResponse converts a domain AdTask entity to its DTO.
func ToTaskResponse(t *entity.AdTask) TaskResponse {
	return TaskResponse{
		ID:             t.ID.String(),
		Title:          t.Title,
		Description:    t.Description,
		SponsorName:    t.SponsorName,
		Type:           string(t.Type),
		MinTimeMinutes: t.Requirements.MinTimeMinutes,
		SkillLevel:     string(t.Requirements.SkillLevel),
		Entries:        t.Reward.Entries,
		StartDate:      t.Schedule.StartDate.Format("2006-01-02"),
		EndDate:        t.Schedule.EndDate.Format("2006-01-02"),
		MaxCompletions: t.Schedule.MaxCompletions,
		Status:         string(t.Status),
		Completions:    t.Analytics.Completions,
		AvgTimeMinutes: t.Analytics.AvgCompletionMins,
	}
}

// ToTaskListResponse converts a list of tasks to TaskListResponse.
func ToTaskListResponse(tasks []*entity.AdTask) TaskListResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskResponse(t)
	}
	return TaskListResponse{Tasks: out}
}

// ToCompletionResponse converts a domain TaskCompletion to its DTO.
func ToCompletionResponse(c *entity.TaskCompletion) CompletionResponse {
	return CompletionResponse{
		ID:               c.ID.String(),
		TaskID:           c.TaskID.String(),
		Status:           string(c.Status),
		TimeSpentMinutes: c.TimeSpentMinutes,
		EntryValue:       c.EntryValue,
		StartedAt:        c.StartedAt,
		CompletedAt:      c.CompletedAt,
		ReviewedAt:       c.ReviewedAt,
	}
}

// ToCompletionListResponse converts a list of completions to its DTO.
func ToCompletionListResponse(completions []*entity.TaskCompletion) CompletionListResponse {
	out := make([]CompletionResponse, len(completions))
	for i, c := range completions {
		out[i] = ToCompletionResponse(c)
	}
	return CompletionListResponse{Completions: out}
}

// ToTaskAnswers converts request answers to domain answers.
func ToTaskAnswers(answers []TaskAnswerRequest) []entity.TaskAnswer {
	out := make([]entity.TaskAnswer, len(answers))
	for i, a := range answers {
		out[i] = entity.TaskAnswer{QuestionID: a.QuestionID, Answer: a.Answer}
	}
	return out
}
