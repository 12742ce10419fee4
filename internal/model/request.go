package model

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// UpdateSettingsRequest merges section-wise: only sections present in the
// payload replace the stored ones.
type UpdateSettingsRequest struct {
	Notifications *NotificationSettings `json:"notifications,omitempty"`
	Security      *SecuritySettings     `json:"security,omitempty"`
	Appearance    *AppearanceSettings   `json:"appearance,omitempty"`
	Language      *string               `json:"language,omitempty"`
}
