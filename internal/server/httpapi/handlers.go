package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/accounts/internal/api"
	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/validation"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req api.RegisterRequest
	if !bind(c, &req) {
		return
	}
	if !check(c, validation.Registration{Email: req.Email, Password: req.Password}) {
		return
	}

	result, err := s.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			s.logger.Info(c.Request.Context(), "Registration rejected", "reason", "email taken")
			c.JSON(http.StatusBadRequest, gin.H{"error": "registration failed"})
			return
		}
		s.internal(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "account_id", result.ID)
	c.JSON(http.StatusCreated, api.RegisterResponse{ID: result.ID, Email: result.Email, Token: result.Token})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req api.LoginRequest
	if !bind(c, &req) {
		return
	}
	if !check(c, validation.Login{Email: req.Email, Password: req.Password}) {
		return
	}

	result, err := s.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		s.internal(c, err)
		return
	}

	c.JSON(http.StatusOK, api.LoginResponse{
		Token: result.Token,
		User:  api.Account{ID: result.ID, Email: result.Email},
	})
}

func (s *HTTPServer) me(c *gin.Context) {
	claims := mustClaims(c)

	p, err := s.accounts.GetProfile(c.Request.Context(), claims.AccountID)
	if err != nil {
		s.protectedError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.Account{ID: p.ID, Email: p.Email})
}

func (s *HTTPServer) updateMe(c *gin.Context) {
	claims := mustClaims(c)

	var req api.UpdateProfileRequest
	if !bind(c, &req) {
		return
	}
	if !check(c, validation.Update{Email: req.Email, Password: req.Password}) {
		return
	}

	p, err := s.accounts.UpdateProfile(c.Request.Context(), claims.AccountID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "update failed"})
			return
		}
		s.protectedError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.Account{ID: p.ID, Email: p.Email})
}

func (s *HTTPServer) deleteAccount(c *gin.Context) {
	claims := mustClaims(c)
	target := c.Param("id")

	if err := s.accounts.DeleteAccount(c.Request.Context(), claims.AccountID, target); err != nil {
		if errors.Is(err, common.ErrForbidden) {
			s.logger.Warn(c.Request.Context(), "Delete of another account refused", "account_id", claims.AccountID)
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		s.protectedError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Account deleted", "account_id", target)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "account deleted"})
}

func (s *HTTPServer) logout(c *gin.Context) {
	claims := mustClaims(c)

	if err := s.accounts.Logout(c.Request.Context(), claims.AccountID); err != nil {
		s.internal(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out; discard the token"})
}

func (s *HTTPServer) health(c *gin.Context) {
	ts := s.now().UTC().Format(time.RFC3339)

	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			s.logger.Error(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "timestamp": ts})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": ts})
}

// bind decodes the JSON body, answering 400 on malformed input.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return false
	}
	return true
}

// check runs request validation, answering 400 with the field errors.
func check(c *gin.Context, req any) bool {
	err := validation.Check(req)
	if err == nil {
		return true
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	}
	return false
}

func mustClaims(c *gin.Context) *auth.Claims {
	claims, _ := auth.ClaimsFromContext(c.Request.Context())
	return claims
}

// protectedError maps failures of calls made on behalf of a token holder.
func (s *HTTPServer) protectedError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrorUnauthorized.Error()})
		return
	}
	s.internal(c, err)
}

func (s *HTTPServer) internal(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
