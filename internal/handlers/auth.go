package handlers

import (
	"errors"
	"net/http"
	"strings"

	"otakumart/internal/logger"
	"otakumart/internal/middleware"
	"otakumart/internal/models"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func handleRegister(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email and password are required"})
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}

		if err := deps.Sessions.SignUp(req.Username, req.Email, req.Password); err != nil {
			if errors.Is(err, store.ErrUserExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
				return
			}
			logger.Error("Registration failed", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		if deps.Email.IsEnabled() {
			go func(user models.User) {
				if err := deps.Email.SendWelcomeEmail(user); err != nil {
					logger.Warn("Failed to send welcome email", "email", user.Email, "error", err)
				}
			}(models.User{Username: req.Username, Email: req.Email})
		}

		// Registration does not sign the user in; the client follows up
		// with a login call.
		c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
	}
}

func handleLogin(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		if err := deps.Sessions.SignIn(req.Username, req.Password); err != nil {
			if errors.Is(err, store.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
				return
			}
			logger.Error("Login failed", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
			return
		}

		user, _ := deps.Sessions.CurrentUser()
		session, err := deps.Sessions.CreateSession(user.ID)
		if err != nil {
			logger.Error("Failed to create session", "user_id", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(middleware.SessionCookie, session.Token,
			int(deps.Sessions.SessionDuration().Seconds()), "/", "",
			!deps.Config.IsDevelopment(), true)

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func handleLogout(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(middleware.SessionCookie); err == nil {
			deps.Sessions.DeleteSession(token)
		}
		deps.Sessions.SignOut()

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "",
			!deps.Config.IsDevelopment(), true)

		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}

func handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

type profileRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func handleUpdateProfile(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and email are required"})
			return
		}

		user := c.MustGet("user").(models.User)
		err := deps.Sessions.UpdateProfileFor(user.ID,
			strings.TrimSpace(req.Username), strings.TrimSpace(req.Email))
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
				return
			}
			logger.Error("Profile update failed", "user_id", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		updated, _ := deps.Sessions.UserByID(user.ID)
		c.JSON(http.StatusOK, gin.H{"user": updated})
	}
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func handleUpdatePassword(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req passwordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current and new passwords are required"})
			return
		}

		if len(req.NewPassword) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}

		user := c.MustGet("user").(models.User)
		if err := deps.Sessions.UpdatePasswordFor(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, store.ErrWrongPassword):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Current password does not match"})
			case errors.Is(err, store.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			default:
				logger.Error("Password update failed", "user_id", user.ID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
