package dto

import "github.com/yukikurage/microin-api/internal/models"

// SkillNFTDTO represents a completion record in a user's portfolio
type SkillNFTDTO struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	TaskTitle string `json:"taskTitle"`
	ImageURL  string `json:"imageUrl"`
	IssueDate string `json:"issueDate" example:"2023-10-26"`
}

// UserDTO represents a user profile in API responses
type UserDTO struct {
	WalletAddress string        `json:"walletAddress"`
	Name          string        `json:"name"`
	IsCompany     bool          `json:"isCompany"`
	Skills        []string      `json:"skills"`
	Portfolio     []SkillNFTDTO `json:"portfolio"`
}

// ToUserDTO converts a User model to UserDTO, portfolio order preserved
func ToUserDTO(user models.User) UserDTO {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}

	portfolio := make([]SkillNFTDTO, len(user.Portfolio))
	for i, nft := range user.Portfolio {
		portfolio[i] = SkillNFTDTO{
			ID:        nft.ID,
			TaskID:    nft.TaskID,
			TaskTitle: nft.TaskTitle,
			ImageURL:  nft.ImageURL,
			IssueDate: nft.IssueDate,
		}
	}

	return UserDTO{
		WalletAddress: user.WalletAddress,
		Name:          user.Name,
		IsCompany:     user.IsCompany,
		Skills:        skills,
		Portfolio:     portfolio,
	}
}
