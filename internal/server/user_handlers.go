package server

import (
	"minix/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile handles GET /profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Location:  user.Location,
		Birthdate: user.Birthdate,
		AvatarURL: user.AvatarURL,
	})
}

// UpdateProfile handles POST /update-profile. Any subset of the profile
// fields may be sent; omitted fields keep their stored values, and the
// avatar is only replaced when a new image is uploaded.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	if v := c.FormValue("name"); v != "" {
		user.Name = v
	}
	if v := c.FormValue("username"); v != "" {
		user.Username = v
	}
	if v := c.FormValue("location"); v != "" {
		user.Location = v
	}
	if v := c.FormValue("birthdate"); v != "" {
		user.Birthdate = v
	}
	if v := c.FormValue("password"); v != "" {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(v), bcryptCost)
		if hashErr != nil {
			return respondError(c, models.NewInternalError(hashErr))
		}
		user.Password = string(hashed)
	}
	if fh := formFile(c, "avatar"); fh != nil {
		url, upErr := s.uploads.Save(fh)
		if upErr != nil {
			return respondError(c, upErr)
		}
		user.AvatarURL = &url
	}

	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Subscribe handles POST /subscribe. Purchases are recorded verbatim, there
// is no plan catalog to validate against.
func (s *Server) Subscribe(c *fiber.Ctx) error {
	var req struct {
		Plan   string  `json:"plan"`
		Price  float64 `json:"price"`
		Period string  `json:"period"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	sub := &models.Subscription{
		UserID: currentUserID(c),
		Plan:   req.Plan,
		Price:  req.Price,
		Period: req.Period,
	}
	if err := s.subRepo.Create(c.UserContext(), sub); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// SearchUsers handles GET /search-users?username=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	results, err := s.userRepo.Search(c.UserContext(), c.Query("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(results)
}
