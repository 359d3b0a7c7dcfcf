package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lokasiku_backend/internals/configs"
	"lokasiku_backend/internals/features/users/auth/dto"
	"lokasiku_backend/internals/features/users/auth/model"
	helper "lokasiku_backend/internals/helpers"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

const (
	accessTokenTTL  = 8 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func signToken(userID string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(secret))
}

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	err := ctrl.DB.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil {
		// email tidak terdaftar dan password salah sengaja dibalas sama
		return helper.ErrorWithMessage(c, fiber.StatusUnauthorized, helper.ErrUnauthorized,
			"Email atau password salah")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return helper.ErrorWithMessage(c, fiber.StatusUnauthorized, helper.ErrUnauthorized,
			"Email atau password salah")
	}

	access, err := signToken(user.ID.String(), accessTokenTTL, configs.JWTSecret)
	if err != nil {
		log.Println("[ERROR] Gagal sign access token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, helper.ErrInternal)
	}
	refresh, err := signToken(user.ID.String(), refreshTokenTTL, configs.JWTRefreshSecret)
	if err != nil {
		log.Println("[ERROR] Gagal sign refresh token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, helper.ErrInternal)
	}

	return helper.JsonData(c, dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	})
}

// POST /api/auth/refresh — tukar refresh token dengan access token baru.
// Refresh token ditandatangani secret terpisah sehingga access token yang
// bocor tidak bisa dipakai memperpanjang sesi.
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	token, err := jwt.Parse(req.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return helper.ErrorWithMessage(c, fiber.StatusUnauthorized, helper.ErrUnauthorized,
			"Refresh token tidak valid atau kedaluwarsa")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}

	access, err := signToken(userID, accessTokenTTL, configs.JWTSecret)
	if err != nil {
		log.Println("[ERROR] Gagal sign access token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, helper.ErrInternal)
	}
	return helper.JsonData(c, dto.LoginResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	})
}

// POST /api/auth/logout — masukkan token aktif ke blacklist.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}

	entry := model.TokenBlacklist{
		Token:     parts[1],
		ExpiredAt: time.Now().Add(accessTokenTTL),
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		log.Println("[ERROR] Gagal blacklist token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, helper.ErrInternal)
	}
	return helper.JsonData(c, fiber.Map{"logged_out": true})
}

// GET /api/auth/me — echo identitas ter-resolve (role + branch).
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	return helper.JsonData(c, user)
}
