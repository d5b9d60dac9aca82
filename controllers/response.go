package controllers

import (
	"errors"

	"shop-app/repositories"

	"github.com/gofiber/fiber/v2"
)

// respondRepoError memetakan error repository ke status HTTP.
func respondRepoError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, repositories.ErrInsufficientStock):
		status = fiber.StatusConflict
	case errors.Is(err, repositories.ErrInvalidTransition):
		status = fiber.StatusConflict
	}

	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func currentUserID(ctx *fiber.Ctx) int {
	userID, ok := ctx.Locals("userID").(float64)
	if !ok {
		return 0
	}
	return int(userID)
}
