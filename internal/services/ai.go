package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/microin-api/internal/constants"
	"github.com/yukikurage/microin-api/internal/models"
	"github.com/yukikurage/microin-api/internal/utils"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIEmptyResponse        = errors.New("AI service returned an empty response")
	ErrAIMalformedResponse    = errors.New("AI service returned a malformed response")
)

// Recommender produces candidate tasks for a skill set. Implementations do
// not fail: problems are logged and yield an empty list.
type Recommender interface {
	Recommend(ctx context.Context, skills []string) []models.Task
}

// AIServiceConfig configures the OpenAI-backed recommender
type AIServiceConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *log.Logger
}

type AIService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

// recommendedTask mirrors the JSON object the model is asked to produce
type recommendedTask struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	Description string          `json:"description"`
	Skills      []string        `json:"skills"`
	Reward      decimal.Decimal `json:"reward"`
	RewardToken string          `json:"rewardToken"`
}

func NewAIService(cfg AIServiceConfig) *AIService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRecommendationTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &AIService{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Recommend returns up to three tasks suited to skills. An empty skill set
// returns an empty list without calling OpenAI; any failure, including the
// call timing out, is logged and also returns an empty list.
func (s *AIService) Recommend(ctx context.Context, skills []string) []models.Task {
	skills = cleanSkills(skills)
	if s == nil || len(skills) == 0 {
		return []models.Task{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tasks, err := s.GenerateRecommendations(ctx, skills)
	if err != nil {
		s.logger.Printf("[AI] Error fetching task recommendations: %v", err)
		return []models.Task{}
	}
	return tasks
}

// GenerateRecommendations asks the model for micro-internship tasks matching skills
func (s *AIService) GenerateRecommendations(ctx context.Context, skills []string) ([]models.Task, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	prompt := fmt.Sprintf(`Based on the following student skills: [%s], generate a list of %d suitable micro-internship tasks for a platform called MICROIN.
The tasks should be short, skill-focused, and appropriate for a student.

Return a JSON object in exactly this shape:
{
  "tasks": [
    {
      "id": "a unique id, for example a UUID",
      "title": "short task title",
      "company": "a fictional company name",
      "description": "a brief description of the work",
      "skills": ["required", "skills"],
      "reward": 120,
      "rewardToken": "USDC"
    }
  ]
}

Rules:
- reward is a number between 50 and 200
- rewardToken is always "USDC"
- Return JSON only, without any explanation`, strings.Join(skills, ", "), constants.MaxRecommendedTasks)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrAIEmptyResponse
	}

	return parseRecommendations(resp.Choices[0].Message.Content)
}

// parseRecommendations accepts a bare JSON array or an object with a "tasks"
// array, optionally wrapped in a markdown code fence.
func parseRecommendations(content string) ([]models.Task, error) {
	payload := stripCodeFence(content)
	if payload == "" {
		return nil, ErrAIEmptyResponse
	}

	var raw []recommendedTask
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAIMalformedResponse, err)
		}
	} else {
		var envelope struct {
			Tasks []recommendedTask `json:"tasks"`
		}
		if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAIMalformedResponse, err)
		}
		if envelope.Tasks == nil {
			return nil, fmt.Errorf("%w: missing tasks array", ErrAIMalformedResponse)
		}
		raw = envelope.Tasks
	}

	tasks := make([]models.Task, 0, constants.MaxRecommendedTasks)
	for _, r := range raw {
		if len(tasks) == constants.MaxRecommendedTasks {
			break
		}
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		tasks = append(tasks, r.toTask())
	}

	return tasks, nil
}

func (r recommendedTask) toTask() models.Task {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = utils.NewID(constants.RecommendedTaskIDPrefix)
	}

	token := strings.TrimSpace(r.RewardToken)
	if token == "" {
		token = constants.DefaultRewardToken
	}

	reward := r.Reward
	if reward.IsNegative() {
		reward = decimal.Zero
	}

	return models.Task{
		ID:          id,
		Title:       strings.TrimSpace(r.Title),
		Company:     strings.TrimSpace(r.Company),
		Description: strings.TrimSpace(r.Description),
		Skills:      cleanSkills(r.Skills),
		Reward:      reward,
		RewardToken: token,
		Status:      models.TaskStatusOpen,
	}
}

func stripCodeFence(content string) string {
	text := strings.TrimSpace(content)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence line, which may carry a language tag
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
