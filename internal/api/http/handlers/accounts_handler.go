package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/service"
	"github.com/spec-kit/account-service/internal/session"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

// AccountsHandler exposes the account lifecycle endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
	sessions *session.Manager
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService, sessions *session.Manager) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, sessions: sessions}
}

// Register handles POST /auth/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, err := h.accounts.Register(c.UserContext(), req.LoginID, req.Password, req.DisplayName)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"account": identity},
	})
}

// Availability handles GET /auth/availability?login_id=. The result is
// a hint only; callers must still handle a conflict on registration.
func (h *AccountsHandler) Availability(c *fiber.Ctx) error {
	loginID := c.Query("login_id")
	if loginID == "" {
		return apperrors.NewValidationError("login_id required", nil)
	}

	available, err := h.accounts.CheckAvailability(c.UserContext(), loginID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AvailabilityResponse{LoginID: loginID, Available: available},
	})
}

// Login handles POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LoginID == "" || req.Password == "" {
		return apperrors.NewValidationError("login_id and password required", nil)
	}

	identity, err := h.accounts.Authenticate(c.UserContext(), req.LoginID, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.sessions.Issue(c.UserContext(), identity)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": identity,
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	token, ok := TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	if err := h.sessions.Revoke(c.UserContext(), token); err != nil && !errors.Is(err, session.ErrNoSession) {
		return apperrors.NewInternalError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /accounts/me.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	identity, ok := IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"account": identity}})
}

// ModifyProfile handles PUT /accounts/me.
func (h *AccountsHandler) ModifyProfile(c *fiber.Ctx) error {
	caller, ok := IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.ModifyProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, err := h.accounts.ModifyProfile(c.UserContext(), caller.AccountID, req.DisplayName)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"account": identity}})
}

// AssignRole handles POST /accounts/:id/role.
func (h *AccountsHandler) AssignRole(c *fiber.Ctx) error {
	accountID, err := parseAccountID(c)
	if err != nil {
		return err
	}

	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.accounts.AssignRole(c.UserContext(), accountID, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"account": accountResponse(account)}})
}

// Suspend handles POST /accounts/:id/sleep.
func (h *AccountsHandler) Suspend(c *fiber.Ctx) error {
	accountID, err := parseAccountID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.Suspend(c.UserContext(), accountID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseAccountID(c *fiber.Ctx) (int64, error) {
	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid account id", nil)
	}
	return accountID, nil
}

func accountResponse(account *domain.Account) fiber.Map {
	return fiber.Map{
		"id":           account.ID,
		"login_id":     account.LoginID,
		"display_name": account.DisplayName,
		"role":         account.Role,
		"status":       account.Status,
		"created_at":   account.CreatedAt,
	}
}
