package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/RividuPesara/apex-auto/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCarModels(c *fiber.Ctx) error {
	search := c.Query("search")
	listingType := c.Query("listingType")

	models, err := h.catalogService.ListCarModels(c.Context(), search, listingType)

	if err != nil {
		slog.ErrorContext(c.UserContext(), "List car models failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "carModels": models})
}

func (h *CatalogHandler) GetCarModel(c *fiber.Ctx) error {
	m, err := h.catalogService.GetCarModel(c.Context(), c.Params("id"))

	if err != nil {
		if errors.Is(err, service.ErrCarModelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Model not found"})
		}

		slog.ErrorContext(c.UserContext(), "Get car model failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "model": m})
}

func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.catalogService.ListServices(c.Context())

	if err != nil {
		slog.ErrorContext(c.UserContext(), "List services failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"count":    len(services),
		"services": services,
	})
}

func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	svc, err := h.catalogService.GetService(c.Context(), c.Params("id"))

	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Service not found"})
		}

		slog.ErrorContext(c.UserContext(), "Get service failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "service": svc})
}
