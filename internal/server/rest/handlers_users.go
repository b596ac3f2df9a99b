package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/j-prt/rating-app-backend/internal/common"
)

func (s *RestServer) token(c *gin.Context) {
	ctx := c.Request.Context()

	var body tokenRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := s.users.Login(ctx, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.Header("WWW-Authenticate", "Bearer")
			detail(c, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		s.logger.Error(ctx, err.Error())
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *RestServer) register(c *gin.Context) {
	ctx := c.Request.Context()

	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.Register(ctx, body.Email, body.Username, body.Password, body.FirstName, body.LastName)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmailTaken):
			detail(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, common.ErrUsernameTaken):
			detail(c, http.StatusBadRequest, "Username already taken")
		default:
			s.logger.Error(ctx, err.Error())
			detail(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info(ctx, "Registered", "username", user.Username)
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *RestServer) listUsers(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]userResponse, 0, len(result))
	for _, u := range result {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

func (s *RestServer) getUser(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error(ctx, err.Error())
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *RestServer) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Auth Confirmed"})
}
