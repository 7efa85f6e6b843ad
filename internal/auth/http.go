// Package auth implements the Google OAuth login flow: redirect out,
// exchange the code, fetch the profile, upsert the user row, and
// establish a server-side session.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/riaz-codebi/CPCG-Tech-Studio/config"
	httpapi "github.com/riaz-codebi/CPCG-Tech-Studio/internal/api/http"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/apperr"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/identity"
	"github.com/riaz-codebi/CPCG-Tech-Studio/internal/session"
)

const (
	providerGoogle = "google"

	googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// userinfo is the subset of the OpenID userinfo payload we keep.
type userinfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Handler owns the OAuth client configuration explicitly; nothing is
// registered globally.
type Handler struct {
	oauth       *oauth2.Config
	users       *identity.Repo
	sessions    *session.Store
	state       *StateSigner
	userinfoURL string
	cookieTTL   time.Duration
}

func NewHandler(cfg config.GoogleConfig, secret string, users *identity.Repo, sessions *session.Store, sessionTTL time.Duration) *Handler {
	return &Handler{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		users:       users,
		sessions:    sessions,
		state:       NewStateSigner(secret, 10*time.Minute),
		userinfoURL: googleUserinfoURL,
		cookieTTL:   sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/auth/google")
	g.GET("/login", h.Login)
	g.GET("/callback", h.Callback)
	g.GET("/logout", h.Logout)
}

// Login redirects the browser to the Google authorize endpoint.
func (h *Handler) Login(c *gin.Context) {
	state, err := h.state.Sign(providerGoogle)
	if err != nil {
		httpapi.Error(c, apperr.Internal(err, "sign state"))
		return
	}
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// Callback exchanges the authorization code, fetches the profile,
// reconciles the user row, and establishes the session.
func (h *Handler) Callback(c *gin.Context) {
	if _, err := h.state.Verify(c.Query("state")); err != nil {
		httpapi.Error(c, apperr.Validation("invalid state"))
		return
	}

	code := c.Query("code")
	if code == "" {
		httpapi.Error(c, apperr.Validation("missing code"))
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		httpapi.Error(c, exchangeError(err))
		return
	}

	info, err := h.fetchUserinfo(c, token)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	user, err := h.users.Upsert(ctx, providerGoogle, identity.Profile{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	})
	if err != nil {
		httpapi.Error(c, apperr.Internal(err, "upsert user"))
		return
	}

	sessionToken, err := h.sessions.Create(ctx, session.Record{
		UserID:  user.ID,
		Subject: info.Sub,
		Email:   user.Email,
		Name:    user.FullName,
		Picture: user.PictureURL,
	})
	if err != nil {
		httpapi.Error(c, apperr.Internal(err, "create session"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, sessionToken, int(h.cookieTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/studio")
}

// Logout clears the session and returns to the public entry point.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		_ = h.sessions.Delete(c.Request.Context(), token)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// exchangeError maps a code-exchange failure: when the token endpoint
// answered with an error status that status travels into the upstream
// error, otherwise it is an internal transport failure.
func exchangeError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return apperr.Upstream("google token exchange", re.Response.StatusCode, strings.TrimSpace(string(re.Body)))
	}
	return apperr.Internal(err, "token exchange failed")
}

func (h *Handler) fetchUserinfo(c *gin.Context, token *oauth2.Token) (*userinfo, error) {
	client := h.oauth.Client(c.Request.Context(), token)
	resp, err := client.Get(h.userinfoURL)
	if err != nil {
		return nil, apperr.Internal(err, "fetch profile")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream("google userinfo", resp.StatusCode, resp.Status)
	}

	var info userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperr.Internal(err, "decode userinfo")
	}
	return &info, nil
}
