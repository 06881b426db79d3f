package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/zsmartex/tradedesk/controllers/entities"
)

const (
	RoleMember = "member"
	RoleDemo   = "demo"
	RoleAdmin  = "admin"
)

type Profile struct {
	ID             string      `json:"id" gorm:"primaryKey"`
	Email          string      `json:"email" gorm:"uniqueIndex"`
	Username       null.String `json:"username"`
	PasswordDigest string      `json:"-"`
	Role           string      `json:"role" gorm:"default:member"`
	Demo           bool        `json:"demo" gorm:"-"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if len(p.ID) == 0 {
		p.ID = uuid.NewString()
	}

	return nil
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsDemo reports whether the profile is the synthetic demo user.
func (p *Profile) IsDemo() bool {
	return p != nil && (p.Demo || p.Role == RoleDemo)
}

func (p *Profile) ToJSON() entities.ProfileEntity {
	return entities.ProfileEntity{
		ID:        p.ID,
		Email:     p.Email,
		Username:  p.Username.String,
		Role:      p.Role,
		Demo:      p.IsDemo(),
		CreatedAt: p.CreatedAt,
	}
}
