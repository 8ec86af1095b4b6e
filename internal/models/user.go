package models

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	BaseModel
	Email        string       `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string       `json:"-" gorm:"type:text;not null"`
	DisplayName  string       `json:"displayName" gorm:"type:varchar(100)"`
	Role         UserRole     `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Spaces       []Space      `json:"-" gorm:"foreignKey:OwnerID"`
	CohostLinks  []CohostLink `json:"-" gorm:"foreignKey:CohostID"`
	Photos       []Photo      `json:"-" gorm:"foreignKey:UploaderID"`
}

// EffectiveRole is the fail-safe role: any missing or unknown value reads as a
// plain user, never as admin.
func (u *User) EffectiveRole() UserRole {
	if u.Role == UserRoleAdmin {
		return UserRoleAdmin
	}
	return UserRoleUser
}

func (u *User) IsAdmin() bool {
	return u.EffectiveRole() == UserRoleAdmin
}
