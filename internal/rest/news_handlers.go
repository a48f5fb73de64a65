package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/ya-news/internal/auth"
	"github.com/daniilsolovey/ya-news/internal/metrics"
	"github.com/daniilsolovey/ya-news/internal/newsportal"
	"github.com/daniilsolovey/ya-news/internal/urls"
)

const (
	opCreate = "create"
	opEdit   = "edit"
	opDelete = "delete"
)

type NewsHandler struct {
	uc       *newsportal.Manager
	sessions *auth.Sessions
	urls     urls.Map
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewNewsHandler(uc *newsportal.Manager, sessions *auth.Sessions, routes urls.Map, m *metrics.Metrics, log *slog.Logger) *NewsHandler {
	return &NewsHandler{
		uc:       uc,
		sessions: sessions,
		urls:     routes,
		metrics:  m,
		log:      log,
	}
}

func (h *NewsHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, ErrorResponse{Error: message})
}

// handleDomainError maps manager errors onto responses. A foreign comment
// and a missing one produce the same 404.
func (h *NewsHandler) handleDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, newsportal.ErrUnauthenticated):
		return c.Redirect(http.StatusFound, h.urls.LoginRedirect(c.Request().RequestURI))
	case errors.Is(err, newsportal.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
}

func (h *NewsHandler) recordComment(operation string, err error) {
	outcome := metrics.OutcomeSuccess
	if _, ok := newsportal.IsValidation(err); ok {
		outcome = metrics.OutcomeRejected
	} else if errors.Is(err, newsportal.ErrNotFound) {
		outcome = metrics.OutcomeNotFound
	} else if errors.Is(err, newsportal.ErrUnauthenticated) {
		outcome = metrics.OutcomeAnonymous
	} else if err != nil {
		outcome = metrics.OutcomeError
	}
	h.metrics.RecordCommentOperation(operation, outcome)
}

func (h *NewsHandler) commentsAnchor(c echo.Context, newsID int) error {
	target, err := h.urls.DetailComments(newsID)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.Redirect(http.StatusFound, target)
}

func pathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param(urls.IDParam))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Home handles GET news:home
// @Summary Home page
// @Description Latest news, most recent first, bounded by NewsCountOnHomePage
// @Tags news
// @Produce json
// @Success 200 {object} rest.HomeContext
// @Failure 500 {object} rest.ErrorResponse
// @Router / [get]
func (h *NewsHandler) Home(c echo.Context) error {
	list, err := h.uc.HomeNews(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, HomeContext{ObjectList: Map(list, NewNews)})
}

func (h *NewsHandler) renderDetail(c echo.Context, newsID int, form *CommentForm) error {
	detail, err := h.uc.NewsDetail(c.Request().Context(), newsID)
	if err != nil {
		return h.handleDomainError(c, err)
	}

	resp := DetailContext{News: NewNewsDetail(*detail)}
	if auth.PrincipalFrom(c).Authenticated() {
		if form == nil {
			form = &CommentForm{}
		}
		resp.Form = form
	}

	return c.JSON(http.StatusOK, resp)
}

// Detail handles GET news:detail
// @Summary News page
// @Description News item with its comments, oldest first. The comment form is present only for authenticated users
// @Tags news
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} rest.DetailContext
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /news/{id}/ [get]
func (h *NewsHandler) Detail(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return h.renderDetail(c, id, nil)
}

// CreateComment handles POST news:detail
// @Summary Add comment
// @Description Creates a comment and redirects to the comment list. Rejected text re-renders the page with a field error
// @Tags comments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "News ID"
// @Param text formData string true "Comment text"
// @Success 200 {object} rest.DetailContext
// @Success 302
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /news/{id}/ [post]
func (h *NewsHandler) CreateComment(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	_, err := h.uc.CreateComment(c.Request().Context(), id, auth.PrincipalFrom(c), req.Text)
	h.recordComment(opCreate, err)
	if ve, ok := newsportal.IsValidation(err); ok {
		return h.renderDetail(c, id, &CommentForm{Text: req.Text, Errors: newFormErrors(ve)})
	} else if err != nil {
		return h.handleDomainError(c, err)
	}

	return h.commentsAnchor(c, id)
}

// EditPage handles GET news:edit
// @Summary Edit comment page
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} rest.CommentContext
// @Success 302
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /edit_comment/{id}/ [get]
func (h *NewsHandler) EditPage(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	comment, err := h.uc.CommentForEdit(c.Request().Context(), id, auth.PrincipalFrom(c))
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.JSON(http.StatusOK, CommentContext{
		Comment: NewComment(*comment),
		Form:    &CommentForm{Text: comment.Text},
	})
}

// EditComment handles POST news:edit
// @Summary Edit comment
// @Description Only the author may edit; anyone else gets 404
// @Tags comments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "Comment ID"
// @Param text formData string true "Comment text"
// @Success 200 {object} rest.CommentContext
// @Success 302
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /edit_comment/{id}/ [post]
func (h *NewsHandler) EditComment(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	comment, err := h.uc.EditComment(c.Request().Context(), id, auth.PrincipalFrom(c), req.Text)
	h.recordComment(opEdit, err)
	if ve, ok := newsportal.IsValidation(err); ok {
		return c.JSON(http.StatusOK, CommentContext{
			Comment: NewComment(*comment),
			Form:    &CommentForm{Text: req.Text, Errors: newFormErrors(ve)},
		})
	} else if err != nil {
		return h.handleDomainError(c, err)
	}

	return h.commentsAnchor(c, comment.NewsID)
}

// DeletePage handles GET news:delete
// @Summary Delete comment confirmation page
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} rest.CommentContext
// @Success 302
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /delete_comment/{id}/ [get]
func (h *NewsHandler) DeletePage(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	comment, err := h.uc.CommentForEdit(c.Request().Context(), id, auth.PrincipalFrom(c))
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.JSON(http.StatusOK, CommentContext{Comment: NewComment(*comment)})
}

// DeleteComment handles POST and DELETE news:delete
// @Summary Delete comment
// @Description Only the author may delete; anyone else gets 404
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 302
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /delete_comment/{id}/ [post]
// @Router /delete_comment/{id}/ [delete]
func (h *NewsHandler) DeleteComment(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	comment, err := h.uc.DeleteComment(c.Request().Context(), id, auth.PrincipalFrom(c))
	h.recordComment(opDelete, err)
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return h.commentsAnchor(c, comment.NewsID)
}
