package handlers

import (
	"net/http"

	"github.com/rakane/SocialMediaBackEnd/internal/auth"
	"github.com/rakane/SocialMediaBackEnd/internal/dto"
	"github.com/rakane/SocialMediaBackEnd/internal/httperr"
	"github.com/rakane/SocialMediaBackEnd/internal/service"
	"github.com/rakane/SocialMediaBackEnd/internal/validation"

	"github.com/gin-gonic/gin"
)

// UserHandler handles registration, login, profiles and follow routes.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Test godoc
// @Summary      Users liveness probe
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /users/test [get]
func (h *UserHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Users works"})
}

// Register godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Registration fields"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs, ok := validation.Register(&req); !ok {
		httperr.Respond(c, httperr.Validation(errs))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}

// Login godoc
// @Summary      Login and receive a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs, ok := validation.Login(&req); !ok {
		httperr.Respond(c, httperr.Validation(errs))
		return
	}
	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Token: token})
}

// Current godoc
// @Summary      Current user record
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/current [get]
func (h *UserHandler) Current(c *gin.Context) {
	id := auth.IdentityFromContext(c)
	u, err := h.svc.Current(c.Request.Context(), id.Handle)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}

// ByHandle godoc
// @Summary      Public profile by handle
// @Tags         users
// @Produce      json
// @Param        handle  path  string  true  "User handle"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/handle/{handle} [get]
func (h *UserHandler) ByHandle(c *gin.Context) {
	u, err := h.svc.ByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}

// Update godoc
// @Summary      Partial profile update
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.UpdateProfileRequest  true  "Fields to change; empty fields are ignored"
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  map[string]string
// @Router       /users/update [post]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := auth.IdentityFromContext(c)
	u, err := h.svc.UpdateProfile(c.Request.Context(), id.ID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}

// Follow godoc
// @Summary      Follow a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.FollowRequest  true  "Target handle"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs, ok := validation.Follow(&req); !ok {
		httperr.Respond(c, httperr.Validation(errs))
		return
	}
	id := auth.IdentityFromContext(c)
	u, err := h.svc.Follow(c.Request.Context(), id.ID, req.Handle)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.FollowRequest  true  "Target handle"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/unfollow [post]
func (h *UserHandler) Unfollow(c *gin.Context) {
	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs, ok := validation.Follow(&req); !ok {
		httperr.Respond(c, httperr.Validation(errs))
		return
	}
	id := auth.IdentityFromContext(c)
	u, err := h.svc.Unfollow(c.Request.Context(), id.ID, req.Handle)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}
