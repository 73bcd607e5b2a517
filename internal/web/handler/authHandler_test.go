package handler_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"animehub/internal/web/models"
	"animehub/internal/web/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLogin_Success(t *testing.T) {
	env := setupRouter(t)
	env.accounts.On("Verify", mock.Anything, "alice", "wonderland").
		Return(&models.Account{ID: 1, Username: "alice"}, nil)

	w := env.postForm("/login", "", url.Values{"username": {"alice"}, "password": {"wonderland"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	page := env.flashesAfter(w)
	assert.Contains(t, page, "Logged in successfully")
	assert.Contains(t, page, `href="/logout"`)

	env.accounts.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupRouter(t)
	env.accounts.On("Verify", mock.Anything, "alice", "wrong").Return(nil, service.ErrInvalidCredentials)
	env.accounts.On("Verify", mock.Anything, "ghost", "wrong").Return(nil, service.ErrInvalidCredentials)

	known := env.postForm("/login", "", url.Values{"username": {"alice"}, "password": {"wrong"}})
	unknown := env.postForm("/login", "", url.Values{"username": {"ghost"}, "password": {"wrong"}})

	for _, w := range []int{known.Code, unknown.Code} {
		assert.Equal(t, http.StatusUnauthorized, w)
	}
	assert.Contains(t, known.Body.String(), "Invalid username and password")
	assert.Contains(t, unknown.Body.String(), "Invalid username and password")
	// form is redisplayed
	assert.Contains(t, known.Body.String(), `action="/login"`)
}

func TestLogin_MissingFields(t *testing.T) {
	env := setupRouter(t)

	w := env.postForm("/login", "", url.Values{"username": {"alice"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username and password are required")
	env.accounts.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_StoreFailure(t *testing.T) {
	env := setupRouter(t)
	env.accounts.On("Verify", mock.Anything, "alice", "pw").Return(nil, errors.New("connection refused"))

	w := env.postForm("/login", "", url.Values{"username": {"alice"}, "password": {"pw"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		setup     func(m *MockAccountService)
		wantLoc   string
		wantFlash string
	}{
		{
			name: "success",
			form: url.Values{"username": {"alice"}, "password": {"pw"}, "confirm_password": {"pw"}},
			setup: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "alice", "pw").Return(&models.Account{ID: 1, Username: "alice"}, nil)
			},
			wantLoc:   "/login",
			wantFlash: "Signup successful! Please log in.",
		},
		{
			name:      "passwords differ",
			form:      url.Values{"username": {"alice"}, "password": {"pw"}, "confirm_password": {"other"}},
			wantLoc:   "/signup",
			wantFlash: "Password does not match",
		},
		{
			name: "username taken",
			form: url.Values{"username": {"alice"}, "password": {"pw"}, "confirm_password": {"pw"}},
			setup: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "alice", "pw").Return(nil, service.ErrDuplicateUsername)
			},
			wantLoc:   "/signup",
			wantFlash: "Username already exists.",
		},
		{
			name:      "missing username",
			form:      url.Values{"password": {"pw"}, "confirm_password": {"pw"}},
			wantLoc:   "/signup",
			wantFlash: "Username and password are required",
		},
		{
			name: "password too long",
			form: url.Values{"username": {"alice"}, "password": {"pw"}, "confirm_password": {"pw"}},
			setup: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "alice", "pw").Return(nil, service.ErrPasswordTooLong)
			},
			wantLoc:   "/signup",
			wantFlash: "Password is too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupRouter(t)
			if tt.setup != nil {
				tt.setup(env.accounts)
			}

			w := env.postForm("/signup", "", tt.form)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			assert.Contains(t, env.flashesAfter(w), tt.wantFlash)
			env.accounts.AssertExpectations(t)
		})
	}
}

func TestSignupPage(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/signup", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="confirm_password"`)
}

func TestLogout(t *testing.T) {
	env := setupRouter(t)

	t.Run("authenticated", func(t *testing.T) {
		w := env.get("/logout", "alice")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		page := env.flashesAfter(w)
		assert.Contains(t, page, "You have been logged out.")
		assert.Contains(t, page, `href="/login"`)
	})

	t.Run("anonymous goes to login", func(t *testing.T) {
		w := env.get("/logout", "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}
