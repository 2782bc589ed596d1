package types

// DefaultUsername is assigned when no profile has been saved yet.
const DefaultUsername = "chef"

// UserProfile is the per-installation singleton profile record.
// Created with defaults on first load, mutated via explicit save,
// never deleted.
type UserProfile struct {
	Username string `json:"username" validate:"required"`
	Avatar   string `json:"avatar,omitempty"` // Data URI or URL.
	Bio      string `json:"bio,omitempty"`
}

// DefaultProfile returns the profile used before the first save.
func DefaultProfile() UserProfile {
	return UserProfile{Username: DefaultUsername}
}
