package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	userapp "github.com/mikeodnis/core-service/internal/application"
	"github.com/mikeodnis/core-service/internal/domain/entity"
	"github.com/mikeodnis/core-service/pkg/helpers"
	"github.com/mikeodnis/core-service/pkg/response"
	"github.com/mikeodnis/core-service/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// createUserRequest is the "create" schema.
type createUserRequest struct {
	Email string `json:"email" validate:"required,nonul,email,max=320"`
	Name  string `json:"name" validate:"required,nonul,min=1,max=255"`
}

// updateUserRequest is the "update" schema. Email is deliberately absent,
// so a client-supplied email is dropped during decoding.
type updateUserRequest struct {
	Name *string `json:"name" validate:"omitnil,nonul,min=1,max=255"`
}

type usersResponse struct {
	Users []entity.User `json:"users"`
}

// userID enforces the UUID route constraint before the handler body runs.
func userID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		verr := validation.NewValidationError("id", "must be a valid UUID")
		response.Error(c, http.StatusBadRequest, response.MsgValidation, verr.Details)
		return "", false
	}
	return id.String(), true
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "list users failed", err)
		return
	}
	response.JSON(c, http.StatusOK, usersResponse{Users: users})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, "get user failed", err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgValidation, map[string]string{"payload": "unreadable body"})
		return
	}
	req, err := validation.Decode[createUserRequest](raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgValidation, validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), userapp.CreateUserInput{Email: req.Email, Name: req.Name})
	if err != nil {
		h.writeServiceError(c, "create user failed", err)
		return
	}
	response.JSON(c, http.StatusCreated, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgValidation, map[string]string{"payload": "unreadable body"})
		return
	}
	req, err := validation.Decode[updateUserRequest](raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgValidation, validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, entity.UserChanges{Name: req.Name})
	if err != nil {
		h.writeServiceError(c, "update user failed", err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// Delete answers 204 whether or not a row was removed.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.internalError(c, "delete user failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) writeServiceError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.MsgUserNotFound, nil)
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Error(c, http.StatusConflict, response.MsgEmailTaken, map[string]string{"email": "is already registered"})
	default:
		h.internalError(c, msg, err)
	}
}

// internalError logs the cause and answers with the generic 500 body.
func (h *UserHandler) internalError(c *gin.Context, msg string, err error) {
	helpers.LogError(h.Logger, msg, err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	})
	response.Error(c, http.StatusInternalServerError, response.MsgInternalServer, nil)
}
