package handler

import (
	"bookmarks_service/internal/auth"
	"bookmarks_service/internal/models"
	"bookmarks_service/internal/service"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "UserID"

type Handler struct {
	serviceLayer service.Service
	tokens       *auth.TokenManager
	log          *slog.Logger
}

type errorResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type authRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createBookmarkRequest struct {
	Title       string `json:"title" binding:"required"`
	Link        string `json:"link" binding:"required"`
	Description string `json:"description"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

func NewHandler(srvc service.Service, tokens *auth.TokenManager, lgr *slog.Logger) *Handler {
	return &Handler{
		serviceLayer: srvc,
		tokens:       tokens,
		log:          lgr,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signUp", h.SignUp)
		authRoutes.POST("/signIn", h.SignIn)
	}

	bookmarks := router.Group("/bookmarks")
	bookmarks.Use(h.AuthMiddleware())
	{
		bookmarks.GET("", h.ListBookmarks)
		bookmarks.GET("/:id", h.GetBookmarkByID)
		bookmarks.POST("", h.CreateBookmark)
		bookmarks.PATCH("/:id", h.EditBookmark)
		bookmarks.DELETE("/:id", h.DeleteBookmark)
	}

	return router
}

// AuthMiddleware verifies the bearer token, re-fetches the user record (a
// token may outlive its account) and puts the caller id into the context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "empty authorization header")

			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			newErrorResponse(c, http.StatusUnauthorized, "invalid authorization header")

			return
		}

		userID, _, err := h.tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				newErrorResponse(c, http.StatusUnauthorized, "token expired")

				return
			}
			newErrorResponse(c, http.StatusUnauthorized, "invalid token")

			return
		}

		user, err := h.serviceLayer.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				newErrorResponse(c, http.StatusUnauthorized, "invalid token")

				return
			}
			newErrorResponse(c, http.StatusInternalServerError, "internal error")

			return
		}

		c.Set(userIDKey, user.ID)

		c.Next()
	}
}

func callerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}

	id, ok := v.(int64)

	return id, ok
}

// POST /auth/signUp
func (h *Handler) SignUp(c *gin.Context) {
	const op = "handler.SignUp"

	log := h.log.With(slog.String("op", op))

	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "email and password are required")

		return
	}

	token, err := h.serviceLayer.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrCredentialsTaken) {
			newErrorResponse(c, http.StatusForbidden, "credentials taken")

			return
		}
		log.Error("failed to sign up", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.JSON(http.StatusCreated, tokenResponse{AccessToken: token})
}

// POST /auth/signIn
func (h *Handler) SignIn(c *gin.Context) {
	const op = "handler.SignIn"

	log := h.log.With(slog.String("op", op))

	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "email and password are required")

		return
	}

	token, err := h.serviceLayer.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			newErrorResponse(c, http.StatusForbidden, "credentials incorrect")

			return
		}
		log.Error("failed to sign in", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

// GET /bookmarks
func (h *Handler) ListBookmarks(c *gin.Context) {
	const op = "handler.ListBookmarks"

	log := h.log.With(slog.String("op", op))

	ownerID, ok := callerID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")

		return
	}

	bookmarks, err := h.serviceLayer.ListBookmarks(c.Request.Context(), ownerID)
	if err != nil {
		log.Error("failed to list bookmarks", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}

	c.JSON(http.StatusOK, bookmarks)
}

// GET /bookmarks/:id
func (h *Handler) GetBookmarkByID(c *gin.Context) {
	const op = "handler.GetBookmarkByID"

	log := h.log.With(slog.String("op", op))

	ownerID, ok := callerID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")

		return
	}

	bookmarkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid bookmark id")

		return
	}

	bm, err := h.serviceLayer.GetBookmarkByID(c.Request.Context(), ownerID, bookmarkID)
	if err != nil {
		log.Error("failed to get bookmark", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	// absent or foreign bookmarks both render as null
	c.JSON(http.StatusOK, bm)
}

// POST /bookmarks
func (h *Handler) CreateBookmark(c *gin.Context) {
	const op = "handler.CreateBookmark"

	log := h.log.With(slog.String("op", op))

	ownerID, ok := callerID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")

		return
	}

	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "title and link are required")

		return
	}

	bm, err := h.serviceLayer.CreateBookmark(c.Request.Context(), ownerID, req.Title, req.Link, req.Description)
	if err != nil {
		log.Error("failed to create bookmark", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.JSON(http.StatusCreated, bm)
}

// PATCH /bookmarks/:id
func (h *Handler) EditBookmark(c *gin.Context) {
	const op = "handler.EditBookmark"

	log := h.log.With(slog.String("op", op))

	ownerID, ok := callerID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")

		return
	}

	bookmarkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid bookmark id")

		return
	}

	var patch models.BookmarkPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	bm, err := h.serviceLayer.EditBookmark(c.Request.Context(), ownerID, bookmarkID, patch)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			newErrorResponse(c, http.StatusForbidden, "access to resource denied")

			return
		}
		log.Error("failed to edit bookmark", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.JSON(http.StatusOK, bm)
}

// DELETE /bookmarks/:id
func (h *Handler) DeleteBookmark(c *gin.Context) {
	const op = "handler.DeleteBookmark"

	log := h.log.With(slog.String("op", op))

	ownerID, ok := callerID(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")

		return
	}

	bookmarkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid bookmark id")

		return
	}

	if err := h.serviceLayer.DeleteBookmark(c.Request.Context(), ownerID, bookmarkID); err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			newErrorResponse(c, http.StatusForbidden, "access to resource denied")

			return
		}
		log.Error("failed to delete bookmark", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "internal error")

		return
	}

	c.Status(http.StatusNoContent)
}
