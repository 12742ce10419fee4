package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `json:"role"`
	Settings     Settings  `json:"settings"`
	JoinDate     time.Time `json:"joinDate"`
}

// Public returns the user shape sent over the wire after login/signup.
func (u User) Public() AuthUser {
	return AuthUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
		Avatar:   u.Avatar,
		Role:     u.Role,
		Settings: u.Settings,
		JoinDate: u.JoinDate,
	}
}

type AuthUser struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Location string    `json:"location,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	Role     string    `json:"role"`
	Settings Settings  `json:"settings"`
	JoinDate time.Time `json:"joinDate"`
}

// AuthClaims is the decoded identity carried by a bearer token.
type AuthClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Appearance    AppearanceSettings   `json:"appearance"`
	Language      string               `json:"language"`
}

type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

type SecuritySettings struct {
	TwoFactor      bool `json:"twoFactor"`
	SessionTimeout int  `json:"sessionTimeout"`
	PasswordExpiry int  `json:"passwordExpiry"`
}

type AppearanceSettings struct {
	Theme    string `json:"theme"`
	FontSize string `json:"fontSize"`
	Density  string `json:"density"`
}

// DefaultSettings are applied to every new account at signup.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{Email: true, Push: true, SMS: false},
		Security:      SecuritySettings{TwoFactor: false, SessionTimeout: 30, PasswordExpiry: 90},
		Appearance:    AppearanceSettings{Theme: "light", FontSize: "medium", Density: "comfortable"},
		Language:      "en",
	}
}
