package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// PostHandler bundles post HTTP handlers.
type PostHandler struct {
	svc service.PostService
}

// NewPostHandler creates a handler layer.
func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=255"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post payload"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, ok := currentUser(c)
	if !ok {
		return httpError(apperrors.ErrInvalidToken)
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	authorID := actor.ID
	post, err := h.svc.CreatePost(c.Request().Context(), req.Title, req.Content, req.Published, &authorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param published_only query bool false "Only published posts (default true)"
// @Success 200 {array} model.Post
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	skip, limit := pagination(c)
	publishedOnly := true
	if v, err := strconv.ParseBool(c.QueryParam("published_only")); err == nil {
		publishedOnly = v
	}

	posts, err := h.svc.ListPosts(c.Request().Context(), skip, limit, publishedOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := h.svc.GetPost(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param patch body model.PostPatch true "Fields to update"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor, ok := currentUser(c)
	if !ok {
		return httpError(apperrors.ErrInvalidToken)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	// Existence is decided before permission so a missing post is a 404
	// for everyone, not a 403.
	post, err := h.svc.GetPost(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	if !auth.CanModify(actor, post.AuthorID) {
		return httpError(apperrors.ErrForbidden)
	}

	var patch model.PostPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.svc.UpdatePost(c.Request().Context(), id, &patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, ok := currentUser(c)
	if !ok {
		return httpError(apperrors.ErrInvalidToken)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := h.svc.GetPost(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	if !auth.CanModify(actor, post.AuthorID) {
		return httpError(apperrors.ErrForbidden)
	}

	if err := h.svc.DeletePost(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "post deleted successfully"})
}
