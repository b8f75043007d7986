package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fatihahmukti-create/Marko-AI/internal/auth"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
	"github.com/fatihahmukti-create/Marko-AI/internal/repository"
)

// Fixed user-facing messages for the credential failures the UI cares about.
// Other provider errors pass through unchanged.
const (
	msgInvalidCredentials = "Password atau email tidak tepat"
	msgUserExists         = "Pengguna telah ada"
)

type AuthHandler struct {
	Users        *repository.UserRepository
	Tokens       *repository.RefreshTokenRepository
	TokenManager *auth.TokenManager
	UploadsDir   string
	UploadsURL   string
}

// NewAuthHandler creates the authentication handler.
func NewAuthHandler(users *repository.UserRepository, tokens *repository.RefreshTokenRepository, manager *auth.TokenManager, uploadsDir, uploadsURL string) *AuthHandler {
	return &AuthHandler{
		Users:        users,
		Tokens:       tokens,
		TokenManager: manager,
		UploadsDir:   uploadsDir,
		UploadsURL:   uploadsURL,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     *string   `json:"name,omitempty"`
	PhotoURL *string   `json:"photo_url,omitempty"`
}

type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

type UserResponse struct {
	User AuthUser `json:"user"`
}

type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

// Register creates an account and issues tokens. A duplicate email returns
// the fixed "user already exists" message.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "Nama harus diisi")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return serverError(c)
	}

	user, err := h.Users.Create(c.Request().Context(), email, passwordHash, &name, nil)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, msgUserExists)
		}
		return serverError(c)
	}

	response, err := h.issueTokens(c.Request().Context(), user)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, response)
}

// Login signs a user in. Unknown email and wrong password collapse into one
// fixed message so the two cases are indistinguishable.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	user, err := h.Users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c, msgInvalidCredentials)
		}
		return serverError(c)
	}

	if err = auth.ComparePassword(user.PasswordHash, password); err != nil {
		return unauthorized(c, msgInvalidCredentials)
	}

	response, err := h.issueTokens(c.Request().Context(), user)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, response)
}

// Refresh rotates a refresh token and issues a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	claims, err := h.TokenManager.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return unauthorized(c, msgInvalidCredentials)
	}

	refreshID, err := uuid.Parse(claims.ID)
	if err != nil {
		return unauthorized(c, msgInvalidCredentials)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return unauthorized(c, msgInvalidCredentials)
	}

	storedToken, err := h.Tokens.GetByID(c.Request().Context(), refreshID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c, msgInvalidCredentials)
		}
		return serverError(c)
	}

	if storedToken.RevokedAt != nil || time.Now().After(storedToken.ExpiresAt) {
		return unauthorized(c, msgInvalidCredentials)
	}

	if storedToken.UserID != userID {
		return unauthorized(c, msgInvalidCredentials)
	}

	if !auth.CompareTokenHash(storedToken.TokenHash, req.RefreshToken) {
		return unauthorized(c, msgInvalidCredentials)
	}

	newRefreshID := uuid.New()
	tokenPair, err := h.TokenManager.NewTokenPair(userID, newRefreshID)
	if err != nil {
		return serverError(c)
	}

	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c, msgInvalidCredentials)
		}
		return serverError(c)
	}

	newToken := models.RefreshToken{
		ID:        newRefreshID,
		UserID:    userID,
		TokenHash: auth.HashToken(tokenPair.RefreshToken),
		ExpiresAt: tokenPair.RefreshExpiresAt,
	}

	if err := h.Tokens.Rotate(c.Request().Context(), storedToken.ID, newToken); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c, msgInvalidCredentials)
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         toAuthUser(user),
	})
}

// Logout revokes the refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	claims, err := h.TokenManager.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return unauthorized(c, msgInvalidCredentials)
	}

	refreshID, err := uuid.Parse(claims.ID)
	if err != nil {
		return unauthorized(c, msgInvalidCredentials)
	}

	if err := h.Tokens.Revoke(c.Request().Context(), refreshID, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.NoContent(http.StatusNoContent)
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "user not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, UserResponse{User: toAuthUser(user)})
}

// UploadPhoto stores a profile photo under the uploads dir and returns its
// public URL, mirroring the original flow of uploading then saving the URL
// on the profile.
func (h *AuthHandler) UploadPhoto(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return badRequest(c, "photo file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return serverError(c)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return badRequest(c, "unsupported photo format")
	}

	if err := os.MkdirAll(h.UploadsDir, 0o755); err != nil {
		return serverError(c)
	}

	filename := "profile_" + userID.String() + ext
	dst, err := os.Create(filepath.Join(h.UploadsDir, filename))
	if err != nil {
		return serverError(c)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return serverError(c)
	}

	photoURL := h.UploadsURL + "/" + filename
	if err := h.Users.UpdatePhotoURL(c.Request().Context(), userID, photoURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "user not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, PhotoResponse{PhotoURL: photoURL})
}

func (h *AuthHandler) issueTokens(ctx context.Context, user models.User) (AuthResponse, error) {
	refreshID := uuid.New()
	pair, err := h.TokenManager.NewTokenPair(user.ID, refreshID)
	if err != nil {
		return AuthResponse{}, err
	}

	refreshToken := models.RefreshToken{
		ID:        refreshID,
		UserID:    user.ID,
		TokenHash: auth.HashToken(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
	}

	if err := h.Tokens.Create(ctx, refreshToken); err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toAuthUser(user),
	}, nil
}

func toAuthUser(user models.User) AuthUser {
	return AuthUser{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	}
}
