package auth

import "time"

// Role determines what a profile may do. Admins approve registrations and
// manage the catalogue; users run the day-to-day book.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a staff profile. New registrations sit unapproved until an admin
// lets them in.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	IsApproved   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Initials derives the avatar initials from the display name.
func (u *User) Initials() string {
	initials := ""
	nextWord := true
	for _, r := range u.DisplayName {
		if r == ' ' {
			nextWord = true
			continue
		}
		if nextWord {
			initials += string(r)
			nextWord = false
			if len([]rune(initials)) == 2 {
				break
			}
		}
	}
	return initials
}
