package models

type User struct {
	WalletAddress string   `gorm:"primarykey;type:varchar(128)" json:"walletAddress"`
	Name          string   `gorm:"not null" json:"name"`
	IsCompany     bool     `gorm:"not null;default:false" json:"isCompany"`
	Skills        []string `gorm:"serializer:json" json:"skills"`

	// Relations
	Portfolio []SkillNFT `gorm:"foreignKey:OwnerWallet;references:WalletAddress" json:"portfolio"`
}

// Clone returns a deep copy of the user and its portfolio. Slices are never nil.
func (u User) Clone() User {
	c := u
	c.Skills = append(make([]string, 0, len(u.Skills)), u.Skills...)
	c.Portfolio = append(make([]SkillNFT, 0, len(u.Portfolio)), u.Portfolio...)
	return c
}

// HasSkillNFTFor reports whether the portfolio already holds a record for taskID.
func (u User) HasSkillNFTFor(taskID string) bool {
	for _, nft := range u.Portfolio {
		if nft.TaskID == taskID {
			return true
		}
	}
	return false
}
