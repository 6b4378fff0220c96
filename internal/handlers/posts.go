package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rakane/SocialMediaBackEnd/internal/auth"
	"github.com/rakane/SocialMediaBackEnd/internal/dto"
	"github.com/rakane/SocialMediaBackEnd/internal/httperr"
	"github.com/rakane/SocialMediaBackEnd/internal/service"
	"github.com/rakane/SocialMediaBackEnd/internal/validation"

	"github.com/gin-gonic/gin"
)

// PostHandler handles post, like, comment and feed routes.
type PostHandler struct {
	svc *service.PostService
}

// NewPostHandler returns a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// Test godoc
// @Summary      Posts liveness probe
// @Tags         posts
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /posts/test [get]
func (h *PostHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Posts works"})
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreatePostRequest  true  "Post body"
// @Success      200   {object}  dto.PostResponse
// @Failure      400   {object}  map[string]string
// @Router       /posts/create-post [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if errs, ok := validation.PostText(req.Text); !ok {
		httperr.Respond(c, httperr.Validation(errs))
		return
	}
	id := auth.IdentityFromContext(c)
	p, err := h.svc.Create(c.Request.Context(), id.ID, req.Text, req.Media)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostToResponse(p))
}

// GetByID godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostToResponse(p))
}

// Delete godoc
// @Summary      Delete a post (author only)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller := auth.IdentityFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), caller.Handle, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Like godoc
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  dto.PostResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/like/{id} [post]
func (h *PostHandler) Like(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller := auth.IdentityFromContext(c)
	p, err := h.svc.Like(c.Request.Context(), caller.ID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostToResponse(p))
}

// Unlike godoc
// @Summary      Remove a like from a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  dto.PostResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/unlike/{id} [post]
func (h *PostHandler) Unlike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller := auth.IdentityFromContext(c)
	p, err := h.svc.Unlike(c.Request.Context(), caller.ID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostToResponse(p))
}

// Comment godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Post ID"
// @Param        body  body      dto.CommentRequest  true  "Comment text"
// @Success      200   {object}  dto.PostResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /posts/comment/{id} [post]
func (h *PostHandler) Comment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if errs, ok := validation.PostText(req.Text); !ok {
		httperr.Respond(c, httperr.Validation(errs))
		return
	}
	caller := auth.IdentityFromContext(c)
	p, err := h.svc.Comment(c.Request.Context(), caller.ID, id, req.Text)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostToResponse(p))
}

// Uncomment godoc
// @Summary      Delete a comment from a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      int  true  "Post ID"
// @Param        commentId  path      int  true  "Comment ID"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/comment/{id}/{commentId} [delete]
func (h *PostHandler) Uncomment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}
	p, err := h.svc.Uncomment(c.Request.Context(), id, commentID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PostToResponse(p))
}

// ByAuthor godoc
// @Summary      All posts by an author
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Author handle"
// @Success      200  {object}  dto.ListPostsResponse
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/posts [get]
func (h *PostHandler) ByAuthor(c *gin.Context) {
	// The path segment is an author handle; it shares the :id name with
	// GET /posts/:id because gin requires one param name per position.
	handle := c.Param("id")
	list, err := h.svc.ByAuthor(c.Request.Context(), handle)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Items: dto.PostsToResponses(list)})
}

// Feed godoc
// @Summary      Feed of self plus followed authors
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListPostsResponse
// @Failure      401  {object}  map[string]string
// @Router       /posts/current/all [get]
func (h *PostHandler) Feed(c *gin.Context) {
	caller := auth.IdentityFromContext(c)
	list, err := h.svc.Feed(c.Request.Context(), caller.Handle)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Items: dto.PostsToResponses(list)})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
