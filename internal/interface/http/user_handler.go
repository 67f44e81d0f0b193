package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/minbase/account-service/internal/application"
	"github.com/minbase/account-service/internal/domain/entity"
	"github.com/minbase/account-service/internal/interface/middleware"
	"github.com/minbase/account-service/pkg/response"
	"github.com/minbase/account-service/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required,mobile"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateRequest struct {
	Email  *string `json:"email" binding:"omitempty,email"`
	Name   *string `json:"name" binding:"omitempty,min=1"`
	Mobile *string `json:"mobile" binding:"omitempty,mobile"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Mobile:   req.Mobile,
	})
	if err != nil {
		if errors.Is(err, userapp.ErrEmailExists) {
			response.Error(c, http.StatusBadRequest, response.CodeAlreadyExists, "email already exists", nil)
			return
		}
		h.unexpected(c, err, "signup failed")
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"user_id": u.ID, "status": "OK"})
}

func (h *UserHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "invalid payload", validation.ToDetails(err))
		return
	}
	token, u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "invalid credentials", nil)
			return
		}
		h.unexpected(c, err, "signin failed")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"jwt_token": token, "user": h.userBody(u)})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not found", nil)
			return
		}
		h.unexpected(c, err, "get profile failed")
		return
	}
	response.OK(c, http.StatusOK, h.userBody(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, userapp.UpdateProfileInput{
		Email:  req.Email,
		Name:   req.Name,
		Mobile: req.Mobile,
	})
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not found", nil)
		case errors.Is(err, userapp.ErrEmailExists):
			response.Error(c, http.StatusBadRequest, response.CodeAlreadyExists, "email already exists", nil)
		default:
			h.unexpected(c, err, "update failed")
		}
		return
	}
	response.OK(c, http.StatusOK, h.userBody(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteAccount(c.Request.Context(), uid); err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not found", nil)
			return
		}
		h.unexpected(c, err, "delete failed")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"status": "OK"})
}

func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.unexpected(c, err, "open upload failed")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadProfileImage(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "user not found", nil)
			return
		}
		h.unexpected(c, err, "profile image upload failed")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"profile_image": url})
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.unexpected(c, err, "user search failed")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"hits": hits})
}

func (h *UserHandler) userBody(u *entity.User) gin.H {
	body := gin.H{
		"id":            u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"mobile":        u.Mobile,
		"profile_image": u.ProfileImage,
		"created_at":    u.CreatedAt,
		"updated_at":    u.UpdatedAt,
	}
	if u.LastLoginAt != nil {
		body["last_login_at"] = u.LastLoginAt
	}
	return body
}

func (h *UserHandler) unexpected(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.Error(c, http.StatusInternalServerError, response.CodeUnexpected, "internal server error", nil)
}
