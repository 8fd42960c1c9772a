package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"DOIT_BACK-END/internal/config"
	"DOIT_BACK-END/internal/dto"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/services"
	"DOIT_BACK-END/internal/utils"
)

const oauthStateCookie = "doit_oauth_state"

type GoogleLoginService interface {
	LoginWithGoogle(ctx context.Context, id services.GoogleIdentity) (*services.LoginResult, error)
}

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	users        GoogleLoginService
	oauth2Config *oauth2.Config
	frontendURL  string
	log          logging.Logger

	// userInfo is swapped out in tests
	userInfo func(ctx context.Context, src oauth2.TokenSource) (*dto.GoogleUserInfo, error)
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(users GoogleLoginService, cfg config.GoogleOAuthConfig, log logging.Logger) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		users:        users,
		oauth2Config: oauth2Config,
		frontendURL:  cfg.FrontendURL,
		log:          log,
		userInfo:     fetchGoogleUserInfo,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Returns the Google consent URL and sets a state cookie checked on callback
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.GoogleLoginResponse} "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	// Generate state parameter for CSRF protection
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteSuccessResponse(w, http.StatusOK, "Google sign-in URL generated", dto.GoogleLoginResponse{
		AuthURL: h.oauth2Config.AuthCodeURL(state),
		State:   state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, signs the Google account in and either redirects to the frontend or returns the token
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State parameter for CSRF protection"
// @Success 200 {object} dto.Envelope{data=dto.LoginResponse} "Login successful"
// @Success 302 "Redirect to frontend with token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 403 {object} dto.ErrorResponse "Unverified Google email"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != q.Get("state") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/api/auth/google", MaxAge: -1})

	code := q.Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Authorization code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	token, err := h.oauth2Config.Exchange(ctx, code)
	if err != nil {
		h.log.Warn(ctx, "google code exchange failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code")
		return
	}

	info, err := h.userInfo(ctx, h.oauth2Config.TokenSource(ctx, token))
	if err != nil {
		utils.WriteError(ctx, w, h.log, err)
		return
	}

	res, err := h.users.LoginWithGoogle(ctx, services.GoogleIdentity{
		Email:    info.Email,
		Name:     info.Name,
		Verified: info.Verified,
	})
	if err != nil {
		if errors.Is(err, services.ErrUnverifiedEmail) {
			utils.WriteErrorResponse(w, http.StatusForbidden, "Google account email is not verified")
			return
		}
		utils.WriteError(ctx, w, h.log, err)
		return
	}

	if h.frontendURL == "" {
		utils.WriteSuccessResponse(w, http.StatusOK, "Login successful", dto.LoginResponse{
			Token: res.Token,
			User:  dto.NewUserResponse(res.User),
		})
		return
	}

	target, err := url.Parse(h.frontendURL)
	if err != nil {
		utils.WriteError(ctx, w, h.log, err)
		return
	}
	params := target.Query()
	params.Set("token", res.Token)
	params.Set("user_id", res.User.ID.String())
	params.Set("email", res.User.Email)
	params.Set("provider", "google")
	target.RawQuery = params.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

// fetchGoogleUserInfo fetches user information from Google
func fetchGoogleUserInfo(ctx context.Context, src oauth2.TokenSource) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Verified: verified,
	}, nil
}
