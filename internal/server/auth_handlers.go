package server

import (
	"fmt"
	"strconv"
	"time"

	"minix/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost factor user rows were historically hashed with.
const bcryptCost = 10

// Register handles POST /register. The body is multipart form data with an
// optional "avatar" image.
func (s *Server) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	username := c.FormValue("username")
	password := c.FormValue("password")

	if name == "" || username == "" || password == "" {
		return respondError(c,
			models.NewValidationError("Name, username, and password are required"))
	}

	var avatarURL *string
	if fh := formFile(c, "avatar"); fh != nil {
		url, err := s.uploads.Save(fh)
		if err != nil {
			return respondError(c, err)
		}
		avatarURL = &url
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:      name,
		Username:  username,
		Password:  string(hashedPassword),
		Location:  c.FormValue("location"),
		Birthdate: c.FormValue("birthdate"),
		AvatarURL: avatarURL,
	}

	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// Login handles POST /login. Unknown usernames and wrong passwords share one
// message so callers cannot enumerate accounts.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c,
			models.NewValidationError("Username and password are required"))
	}

	if req.Username == "" || req.Password == "" {
		return respondError(c,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userRepo.GetByUsername(c.UserContext(), req.Username)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return respondError(c,
			models.NewUnauthorizedError("Invalid username or password"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return respondError(c,
			models.NewUnauthorizedError("Invalid username or password"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"success": true, "token": token})
}

// generateToken creates a signed one-hour JWT bound to the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "minix-api",
		"aud": "minix-client",
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
