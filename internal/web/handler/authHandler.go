package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"animehub/internal/web/dto"
	"animehub/internal/web/middleware"
	"animehub/internal/web/service"

	"github.com/gin-gonic/gin"
)

const (
	msgCredentialsRequired = "Username and password are required"
	msgInvalidCredentials  = "Invalid username and password"
	msgLoggedIn            = "Logged in successfully"
	msgLoggedOut           = "You have been logged out."
	msgPasswordMismatch    = "Password does not match"
	msgUsernameTaken       = "Username already exists."
	msgPasswordTooLong     = "Password is too long"
	msgSignedUp            = "Signup successful! Please log in."
)

type AuthHandler struct {
	pages
	accountService service.AccountService
	sessions       *middleware.SessionManager
}

func NewAuthHandler(accountService service.AccountService, sessions *middleware.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		pages:          pages{logger: logger},
		accountService: accountService,
		sessions:       sessions,
	}
}

// LoginPage renders the login form
// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Username": ""})
}

// Login checks the posted credentials and starts an authenticated session
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, msgCredentialsRequired)
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"Title": "Log in", "Username": ""})
		return
	}
	form.Normalize()

	if form.Username == "" || form.Password == "" {
		middleware.AddFlash(c, msgCredentialsRequired)
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"Title": "Log in", "Username": form.Username})
		return
	}

	account, err := h.accountService.Verify(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// same message whether or not the username exists
			middleware.AddFlash(c, msgInvalidCredentials)
			h.render(c, http.StatusUnauthorized, "login.html", gin.H{"Title": "Log in", "Username": form.Username})
			return
		}
		h.serverError(c, err)
		return
	}

	h.sessions.Login(c, account)
	middleware.AddFlash(c, msgLoggedIn)
	h.logger.Info("user logged in", "user", account.Username)
	h.redirect(c, http.StatusSeeOther, "/")
}

// SignupPage renders the signup form
// GET /signup
func (h *AuthHandler) SignupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up"})
}

// Signup creates an account; validation problems go back to the form as flashes
// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, msgCredentialsRequired)
		h.redirect(c, http.StatusSeeOther, "/signup")
		return
	}
	form.Normalize()

	if form.Username == "" || form.Password == "" {
		middleware.AddFlash(c, msgCredentialsRequired)
		h.redirect(c, http.StatusSeeOther, "/signup")
		return
	}

	if form.Password != form.ConfirmPassword {
		middleware.AddFlash(c, msgPasswordMismatch)
		h.redirect(c, http.StatusSeeOther, "/signup")
		return
	}

	account, err := h.accountService.Register(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		middleware.AddFlash(c, msgUsernameTaken)
		h.redirect(c, http.StatusSeeOther, "/signup")
		return
	case errors.Is(err, service.ErrPasswordTooLong):
		middleware.AddFlash(c, msgPasswordTooLong)
		h.redirect(c, http.StatusSeeOther, "/signup")
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	h.logger.Info("account created", "user", account.Username)
	middleware.AddFlash(c, msgSignedUp)
	h.redirect(c, http.StatusSeeOther, "/login")
}

// Logout ends the authenticated session
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c)
	middleware.AddFlash(c, msgLoggedOut)
	h.redirect(c, http.StatusFound, "/")
}
