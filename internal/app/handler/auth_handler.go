package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/config"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/dto"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/redis"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/repository"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// AuthHandler contains the service account endpoints.
type AuthHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	Config      *config.Config
}

func NewAuthHandler(r *repository.Repository, redisClient *redis.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		Config:      cfg,
	}
}

func (h *AuthHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func generateHashString(s string) string {
	hash := sha1.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}

// Register creates a service account
// @Summary Register a service account
// @Description Creates an account for the optimizer's own operators, not a tenant user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid registration data")
		return
	}

	exists, err := h.Repository.UserExistsByLogin(c.Request.Context(), req.Login)
	if err != nil {
		logrus.Error("Error checking login: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error checking login")
		return
	}
	if exists {
		h.errorResponse(c, http.StatusConflict, "Login is already taken")
		return
	}

	user, err := h.Repository.CreateUser(c.Request.Context(), req.Login,
		generateHashString(req.Password), req.FullName, role.Role(req.Role))
	if err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{
		ID:       user.ID,
		Login:    user.Login,
		FullName: user.FullName,
		Role:     int(user.Role),
	})
}

// Login issues a JWT
// @Summary Log in
// @Description Checks the credentials and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid login data")
		return
	}

	user, err := h.Repository.GetUserByLogin(c.Request.Context(), req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusUnauthorized, "Invalid login or password")
			return
		}
		logrus.Error("Error loading user: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading user")
		return
	}

	if user.Password != generateHashString(req.Password) {
		h.errorResponse(c, http.StatusUnauthorized, "Invalid login or password")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, &ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "license-optimizer",
		},
		UserID: user.ID,
		Role:   user.Role,
	})

	tokenString, err := token.SignedString([]byte(h.Config.JWT.Token))
	if err != nil {
		logrus.Error("Error signing token: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error signing token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: tokenString,
		User: dto.UserResponse{
			ID:       user.ID,
			Login:    user.Login,
			FullName: user.FullName,
			Role:     int(user.Role),
		},
	})
}

// Logout invalidates the presented token
// @Summary Log out
// @Description Puts the bearer token on the blacklist until it expires
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jwtStr := c.GetHeader("Authorization")
	if jwtStr == "" {
		h.errorResponse(c, http.StatusUnauthorized, "Missing token")
		return
	}
	if len(jwtStr) > 7 && jwtStr[:7] == "Bearer " {
		jwtStr = jwtStr[7:]
	}

	_, err := jwt.ParseWithClaims(jwtStr, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	err = h.RedisClient.WriteJWTToBlacklist(c.Request.Context(), jwtStr, h.Config.JWT.ExpiresIn)
	if err != nil {
		logrus.Error("Error blacklisting token: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error blacklisting token")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Status:  "success",
		Message: "Logged out",
	})
}

// GetProfile returns the authenticated account
// @Summary Get own profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		h.errorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, ok := userID.(uint)
	if !ok {
		h.errorResponse(c, http.StatusUnauthorized, "Invalid user ID")
		return
	}

	user, err := h.Repository.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "User not found")
			return
		}
		logrus.Error("Error loading user: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading user")
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		ID:       user.ID,
		Login:    user.Login,
		FullName: user.FullName,
		Role:     int(user.Role),
	})
}
