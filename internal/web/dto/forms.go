package dto

import "strings"

// Form payloads for the HTML pages. Missing fields are reported as flash
// messages by the handlers, so no binding rules are declared here.

// LoginForm: fields posted by the login page
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// SignupForm: fields posted by the signup page
type SignupForm struct {
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// ReviewForm: review text posted from an anime page
type ReviewForm struct {
	Review string `form:"review"`
}

// Normalize trims the username; passwords are taken as typed.
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

func (f *SignupForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

func (f *ReviewForm) Normalize() {
	f.Review = strings.TrimSpace(f.Review)
}
