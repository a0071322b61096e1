package http

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauthState"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// AuthHandler serves signup, verification, login, password reset and Google sign-in.
type AuthHandler struct {
	emailVerUC  usecasecontract.IEmailVerificationUC
	userUseCase usecasecontract.IUserUseCase
	oauthConfig *oauth2.Config
	logger      usecasecontract.IAppLogger
}

func NewAuthHandler(emailVerUC usecasecontract.IEmailVerificationUC, uc usecasecontract.IUserUseCase, oauthConfig *oauth2.Config, logger usecasecontract.IAppLogger) *AuthHandler {
	return &AuthHandler{
		emailVerUC:  emailVerUC,
		userUseCase: uc,
		oauthConfig: oauthConfig,
		logger:      logger,
	}
}

// NewGoogleOAuthConfig returns nil when no client id is configured.
func NewGoogleOAuthConfig(clientID, clientSecret, baseURL string) *oauth2.Config {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  strings.TrimRight(baseURL, "/") + "/api/v1/auth/google/callback",
		Scopes:       []string{"email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// Register starts a signup and returns the pending token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	pendingToken, err := h.emailVerUC.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.PendingResponse{
		Message:      "Registration started. Please check your email for the verification code.",
		PendingToken: pendingToken,
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	pendingToken, ok := pendingTokenFrom(c, req.PendingToken)
	if !ok {
		return
	}
	user, token, err := h.emailVerUC.VerifyEmail(c.Request.Context(), pendingToken, req.Code)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.AuthResponse{User: dto.ToUserResponse(*user), Token: token})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if c.Request.ContentLength != 0 {
		if err := BindAndValidate(c, &req); err != nil {
			return
		}
	}
	pendingToken, ok := pendingTokenFrom(c, req.PendingToken)
	if !ok {
		return
	}
	if err := h.emailVerUC.ResendVerification(c.Request.Context(), pendingToken); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "A new verification code has been sent")
}

// pendingTokenFrom prefers the bearer header and falls back to the body field.
func pendingTokenFrom(c *gin.Context, fromBody string) (string, bool) {
	if token, ok := middleware.BearerToken(c); ok {
		return token, true
	}
	if token := strings.TrimSpace(fromBody); token != "" {
		return token, true
	}
	ErrorHandler(c, http.StatusUnauthorized, domainerrors.ErrUnauthenticated.Error())
	return "", false
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, token, err := h.userUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.AuthResponse{User: dto.ToUserResponse(*user), Token: token})
}

// ForgotPassword answers the same way whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.userUseCase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.logger.Errorf("forgot password: %v", err)
	}
	MessageHandler(c, http.StatusOK, "If an account with that email exists, a password reset link has been sent")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.userUseCase.ResetPassword(c.Request.Context(), req.Verifier, req.Token, req.Password); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Password reset successfully")
}

func (h *AuthHandler) HandleGoogleLogin(c *gin.Context) {
	if h.oauthConfig == nil {
		ErrorHandler(c, http.StatusNotFound, "google sign-in is not configured")
		return
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	state := base64.URLEncoding.EncodeToString(b)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 300, "/", "", c.Request.TLS != nil, true)

	c.Redirect(http.StatusTemporaryRedirect, h.oauthConfig.AuthCodeURL(state))
}

type googleProfile struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func (h *AuthHandler) HandleGoogleCallback(c *gin.Context) {
	if h.oauthConfig == nil {
		ErrorHandler(c, http.StatusNotFound, "google sign-in is not configured")
		return
	}
	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(c, http.StatusUnauthorized, "invalid oauth state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", c.Request.TLS != nil, true)

	code := c.Query("code")
	if code == "" {
		ErrorHandler(c, http.StatusBadRequest, "authorization code not provided")
		return
	}

	ctx := c.Request.Context()
	profile, err := h.fetchGoogleProfile(ctx, code)
	if err != nil {
		h.logger.Errorf("google callback: %v", err)
		ErrorHandler(c, http.StatusBadGateway, "failed to read google profile")
		return
	}

	name, surname := profile.GivenName, profile.FamilyName
	if name == "" {
		name, surname, _ = strings.Cut(profile.Name, " ")
	}
	user, token, err := h.userUseCase.LoginWithOAuth(ctx, name, surname, profile.Email)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.AuthResponse{User: dto.ToUserResponse(*user), Token: token})
}

func (h *AuthHandler) fetchGoogleProfile(ctx context.Context, code string) (*googleProfile, error) {
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	resp, err := h.oauthConfig.Client(ctx, token).Get(googleUserInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info returned %s", resp.Status)
	}
	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}
	return &profile, nil
}
