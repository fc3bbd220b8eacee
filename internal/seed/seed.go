package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/microin-api/internal/constants"
	"github.com/yukikurage/microin-api/internal/models"
	"github.com/yukikurage/microin-api/internal/repository"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultFixture []byte

// Fixture is the decoded content of a seed file
type Fixture struct {
	Tasks []models.Task
	Users []models.User
}

type fileFixture struct {
	Tasks []taskFixture `yaml:"tasks"`
	Users []userFixture `yaml:"users"`
}

type taskFixture struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Company     string   `yaml:"company"`
	Description string   `yaml:"description"`
	Skills      []string `yaml:"skills"`
	Reward      string   `yaml:"reward"`
	RewardToken string   `yaml:"rewardToken"`
	Status      string   `yaml:"status"`
	Assignee    string   `yaml:"assignee"`
}

type userFixture struct {
	WalletAddress string       `yaml:"walletAddress"`
	Name          string       `yaml:"name"`
	IsCompany     bool         `yaml:"isCompany"`
	Skills        []string     `yaml:"skills"`
	Portfolio     []nftFixture `yaml:"portfolio"`
}

type nftFixture struct {
	ID        string `yaml:"id"`
	TaskID    string `yaml:"taskId"`
	TaskTitle string `yaml:"taskTitle"`
	ImageURL  string `yaml:"imageUrl"`
	IssueDate string `yaml:"issueDate"`
}

// Load reads the fixture at path, or the embedded demo data when path is empty
func Load(path string) (Fixture, error) {
	if path == "" {
		return Parse(defaultFixture)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML seed data
func Parse(data []byte) (Fixture, error) {
	var file fileFixture
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Fixture{}, fmt.Errorf("failed to parse seed data: %w", err)
	}

	fixture := Fixture{
		Tasks: make([]models.Task, 0, len(file.Tasks)),
		Users: make([]models.User, 0, len(file.Users)),
	}

	for _, t := range file.Tasks {
		task, err := t.toModel()
		if err != nil {
			return Fixture{}, err
		}
		fixture.Tasks = append(fixture.Tasks, task)
	}
	for _, u := range file.Users {
		user, err := u.toModel()
		if err != nil {
			return Fixture{}, err
		}
		fixture.Users = append(fixture.Users, user)
	}

	return fixture, nil
}

// Apply loads the fixture into store
func Apply(ctx context.Context, store repository.Store, fixture Fixture) error {
	if err := store.Seed(ctx, fixture.Tasks, fixture.Users); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}
	return nil
}

func (t taskFixture) toModel() (models.Task, error) {
	reward := decimal.Zero
	if raw := strings.TrimSpace(t.Reward); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return models.Task{}, fmt.Errorf("seed task %q: invalid reward %q: %w", t.ID, t.Reward, err)
		}
		reward = parsed
	}

	status := models.TaskStatus(t.Status)
	if status == "" {
		status = models.TaskStatusOpen
	}

	token := t.RewardToken
	if token == "" {
		token = constants.DefaultRewardToken
	}

	return models.Task{
		ID:          t.ID,
		Title:       t.Title,
		Company:     t.Company,
		Description: t.Description,
		Skills:      append(make([]string, 0, len(t.Skills)), t.Skills...),
		Reward:      reward,
		RewardToken: token,
		Status:      status,
		Assignee:    t.Assignee,
	}, nil
}

func (u userFixture) toModel() (models.User, error) {
	user := models.User{
		WalletAddress: u.WalletAddress,
		Name:          u.Name,
		IsCompany:     u.IsCompany,
		Skills:        append(make([]string, 0, len(u.Skills)), u.Skills...),
		Portfolio:     make([]models.SkillNFT, 0, len(u.Portfolio)),
	}

	for _, n := range u.Portfolio {
		nft := models.SkillNFT{
			ID:          n.ID,
			OwnerWallet: u.WalletAddress,
			TaskID:      n.TaskID,
			TaskTitle:   n.TaskTitle,
			ImageURL:    n.ImageURL,
			IssueDate:   n.IssueDate,
		}
		if nft.ImageURL == "" {
			nft.ImageURL = fmt.Sprintf(constants.SkillNFTImageURLFormat, n.TaskID)
		}
		if n.IssueDate != "" {
			issued, err := time.Parse(constants.IssueDateLayout, n.IssueDate)
			if err != nil {
				return models.User{}, fmt.Errorf("seed nft %q: invalid issueDate %q: %w", n.ID, n.IssueDate, err)
			}
			nft.MintedAt = issued
		}
		user.Portfolio = append(user.Portfolio, nft)
	}

	return user, nil
}
