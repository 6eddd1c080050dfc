package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleOAuthHandler struct {
	Auth            *AuthHandler
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// tempCookie sets a short-lived cookie; a negative maxAge expires it.
func (h *GoogleOAuthHandler) tempCookie(c *fiber.Ctx, name, value string, maxAge int) {
	ck := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Auth.Secure,
		SameSite: "Lax",
	}
	if maxAge < 0 {
		ck.Expires = time.Now().Add(-time.Hour)
	} else {
		ck.MaxAge = maxAge
	}
	c.Cookie(ck)
}

// safeNext keeps redirects on the frontend: only absolute paths are allowed.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)
	h.tempCookie(c, "oauth_state", st, 10*60)
	h.tempCookie(c, "oauth_next", safeNext(c.Query("next", "/")), 10*60)

	return c.Redirect(h.oauthCfg().AuthCodeURL(st, oauth2.AccessTypeOffline), http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (h *GoogleOAuthHandler) fail(c *fiber.Ctx, msg string) error {
	return c.Redirect(h.FrontendBaseURL+"/login?err="+url.QueryEscape(msg), http.StatusTemporaryRedirect)
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return badRequest(c, "Missing code/state")
	}
	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return badRequest(c, "Invalid state")
	}
	next := safeNext(c.Cookies("oauth_next", "/"))

	cfg := h.oauthCfg()
	tok, err := cfg.Exchange(c.UserContext(), code)
	if err != nil {
		slog.Warn("google code exchange failed", "err", err)
		return h.fail(c, "Google sign-in failed")
	}

	resp, err := cfg.Client(c.UserContext(), tok).Get(googleUserInfoURL)
	if err != nil {
		slog.Warn("google userinfo failed", "err", err)
		return h.fail(c, "Google sign-in failed")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return h.fail(c, "Google sign-in failed")
	}
	if !gu.VerifiedEmail {
		return h.fail(c, "Google account email is not verified")
	}

	_, jwtToken, err := h.Auth.Users.SignInExternal(c.UserContext(), gu.Email, gu.Name, gu.Picture)
	if err != nil {
		slog.Warn("google sign-in rejected", "email", gu.Email, "err", err)
		return h.fail(c, "Could not sign in with Google")
	}

	h.Auth.setSession(c, jwtToken)
	h.tempCookie(c, "oauth_state", "", -1)
	h.tempCookie(c, "oauth_next", "", -1)

	return c.Redirect(h.FrontendBaseURL+next, http.StatusTemporaryRedirect)
}
