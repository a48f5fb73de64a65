package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/ya-news/internal/auth"
	"github.com/daniilsolovey/ya-news/internal/newsportal"
	"github.com/daniilsolovey/ya-news/internal/urls"
)

const (
	fieldNonField  = "__all__"
	fieldPassword1 = "password1"
	fieldPassword2 = "password2"

	msgPasswordMismatch = "Введенные пароли не совпадают."
)

// safeNext keeps only local absolute paths as login redirect targets.
func safeNext(next string) bool {
	return strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.Contains(next, "\\")
}

// LoginPage handles GET users:login
// @Summary Login page
// @Tags users
// @Produce json
// @Param next query string false "Redirect target after login"
// @Success 200 {object} rest.LoginContext
// @Router /auth/login/ [get]
func (h *NewsHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, LoginContext{Form: LoginForm{Next: c.QueryParam("next")}})
}

// Login handles POST users:login
// @Summary Log in
// @Description Sets the session cookie and redirects to next, or home
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param next query string false "Redirect target after login"
// @Success 200 {object} rest.LoginContext
// @Success 302
// @Failure 429,500 {object} rest.ErrorResponse
// @Router /auth/login/ [post]
func (h *NewsHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}
	if req.Next == "" {
		req.Next = c.QueryParam("next")
	}

	principal, err := h.uc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, newsportal.ErrInvalidCredentials) {
		h.log.Info("login failed", "username", req.Username)
		return c.JSON(http.StatusOK, LoginContext{Form: LoginForm{
			Username: req.Username,
			Next:     req.Next,
			Errors:   FormErrors{fieldNonField: {err.Error()}},
		}})
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	if err := auth.SetSession(c, h.sessions, principal); err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	target := h.urls.Route(urls.Home)
	if safeNext(req.Next) {
		target = req.Next
	}

	return c.Redirect(http.StatusFound, target)
}

// Logout handles GET and POST users:logout
// @Summary Log out
// @Tags users
// @Produce json
// @Success 200 {object} rest.StatusResponse
// @Router /auth/logout/ [get]
// @Router /auth/logout/ [post]
func (h *NewsHandler) Logout(c echo.Context) error {
	auth.ClearSession(c, h.sessions)
	return c.JSON(http.StatusOK, StatusResponse{Status: "logged out"})
}

// SignupPage handles GET users:signup
// @Summary Signup page
// @Tags users
// @Produce json
// @Success 200 {object} rest.SignupContext
// @Router /auth/signup/ [get]
func (h *NewsHandler) SignupPage(c echo.Context) error {
	return c.JSON(http.StatusOK, SignupContext{})
}

// Signup handles POST users:signup
// @Summary Create account
// @Description Creates the user, logs them in and redirects home
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password1 formData string true "Password"
// @Param password2 formData string true "Password confirmation"
// @Success 200 {object} rest.SignupContext
// @Success 302
// @Failure 429,500 {object} rest.ErrorResponse
// @Router /auth/signup/ [post]
func (h *NewsHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	if req.Password1 != req.Password2 {
		return c.JSON(http.StatusOK, SignupContext{Form: SignupForm{
			Username: req.Username,
			Errors:   FormErrors{fieldPassword2: {msgPasswordMismatch}},
		}})
	}

	user, err := h.uc.Signup(c.Request().Context(), req.Username, req.Password1)
	if ve, ok := newsportal.IsValidation(err); ok {
		errs := newFormErrors(ve)
		if msgs, ok := errs[newsportal.FieldPassword]; ok {
			delete(errs, newsportal.FieldPassword)
			errs[fieldPassword1] = msgs
		}
		return c.JSON(http.StatusOK, SignupContext{Form: SignupForm{
			Username: req.Username,
			Errors:   errs,
		}})
	} else if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	h.log.Info("user signed up", "userId", user.ID, "username", user.Username)
	if err := auth.SetSession(c, h.sessions, user.Principal()); err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.Redirect(http.StatusFound, h.urls.Route(urls.Home))
}
