package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/RividuPesara/apex-auto/internal/model"
	"github.com/RividuPesara/apex-auto/internal/s3"
	"github.com/RividuPesara/apex-auto/internal/service"
)

type BuildHandler struct {
	buildService service.BuildService
	validate     *validator.Validate
	presigner    *s3.FilePresigner
}

func NewBuildHandler(buildService service.BuildService, presigner *s3.FilePresigner) *BuildHandler {
	return &BuildHandler{
		buildService: buildService,
		validate:     validator.New(),
		presigner:    presigner,
	}
}

type CreateBuildRequest struct {
	CarModel           string               `json:"carModel" validate:"required"`
	Color              string               `json:"color" validate:"required"`
	SelectedParts      *model.SelectedParts `json:"selectedParts,omitempty"`
	SelectedServices   *model.ServiceIDs    `json:"selectedServices,omitempty"`
	ModelName          string               `json:"modelName,omitempty"`
	ModelImage         string               `json:"modelImage,omitempty"`
	TotalEstimatedCost int64                `json:"totalEstimatedCost,omitempty"`
	Notes              string               `json:"notes,omitempty"`
}

// UpdateBuildRequest fields are pointers: absent fields keep their stored
// values while explicitly supplied empty values are still applied.
type UpdateBuildRequest struct {
	CarModel           *string              `json:"carModel,omitempty"`
	Color              *string              `json:"color,omitempty"`
	SelectedParts      *model.SelectedParts `json:"selectedParts,omitempty"`
	SelectedServices   *model.ServiceIDs    `json:"selectedServices,omitempty"`
	ModelName          *string              `json:"modelName,omitempty"`
	ModelImage         *string              `json:"modelImage,omitempty"`
	TotalEstimatedCost *int64               `json:"totalEstimatedCost,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
}

func (h *BuildHandler) CreateBuild(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid user claims"})
	}

	var request CreateBuildRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Car model and color are required", "details": err.Error()})
	}

	input := service.CreateBuildInput{
		CarModel:           request.CarModel,
		Color:              request.Color,
		ModelName:          request.ModelName,
		ModelImage:         request.ModelImage,
		TotalEstimatedCost: request.TotalEstimatedCost,
		Notes:              request.Notes,
	}
	if request.SelectedParts != nil {
		input.SelectedParts = *request.SelectedParts
	}
	if request.SelectedServices != nil {
		input.SelectedServices = *request.SelectedServices
	}

	build, err := h.buildService.CreateBuild(c.Context(), userID, input)

	if err != nil {
		if errors.Is(err, service.ErrCarModelRequired) || errors.Is(err, service.ErrColorRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}

		slog.ErrorContext(c.UserContext(), "Create build failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "build": build})
}

func (h *BuildHandler) ListBuilds(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid user claims"})
	}

	builds, err := h.buildService.ListBuilds(c.Context(), userID)

	if err != nil {
		slog.ErrorContext(c.UserContext(), "List builds failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(builds),
		"builds":  builds,
	})
}

func (h *BuildHandler) UpdateBuild(c *fiber.Ctx) error {
	buildID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid build ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid user claims"})
	}

	var request UpdateBuildRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	patch := service.BuildPatch{
		CarModel:           request.CarModel,
		Color:              request.Color,
		SelectedParts:      request.SelectedParts,
		SelectedServices:   request.SelectedServices,
		ModelName:          request.ModelName,
		ModelImage:         request.ModelImage,
		TotalEstimatedCost: request.TotalEstimatedCost,
		Notes:              request.Notes,
	}

	build, err := h.buildService.UpdateBuild(c.Context(), buildID, userID, patch)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrBuildNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Build not found"})
		case errors.Is(err, service.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Not authorized to update this build"})
		case errors.Is(err, service.ErrCarModelRequired), errors.Is(err, service.ErrColorRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Update build failed", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "build": build})
}

func (h *BuildHandler) DeleteBuild(c *fiber.Ctx) error {
	buildID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid build ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid user claims"})
	}

	err = h.buildService.DeleteBuild(c.Context(), buildID, userID)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrBuildNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Build not found"})
		case errors.Is(err, service.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Not authorized to delete this build"})
		default:
			slog.ErrorContext(c.UserContext(), "Delete build failed", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Build deleted successfully"})
}

// GetUploadURL returns a presigned PUT URL for a build snapshot image.
func (h *BuildHandler) GetUploadURL(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid user claims"})
	}

	if h.presigner == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Image uploads are not configured"})
	}

	objectKey := "build-images/" + userID.String() + "/" + uuid.New().String() + ".webp"

	uploadURL, err := h.presigner.GeneratePresignedUploadURL(objectKey)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Presign failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not generate upload URL"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"uploadUrl": uploadURL,
		"imageUrl":  h.presigner.PublicURL(objectKey),
	})
}
