package controller

import (
	"errors"

	"pc-estimate-be/internal/dto"
	"pc-estimate-be/internal/pkg/serverutils"
	"pc-estimate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGalleryController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Share(ctx *fiber.Ctx) error
}

type galleryController struct {
	galleryService service.IGalleryService
}

func NewGalleryController(galleryService service.IGalleryService) IGalleryController {
	return &galleryController{
		galleryService: galleryService,
	}
}

func (c *galleryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gallery/v1")
	h.Get("all", c.ListAll) // public, registered before the auth gate
	h.Use(serverutils.JwtMiddleware)
	h.Post("save", c.Save)
	h.Get("list", c.List)
	h.Delete(":id", c.Delete)
	h.Post("share", c.Share)
}

func (c *galleryController) Save(ctx *fiber.Ctx) error {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id"))
	}

	var req dto.SaveEstimateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.galleryService.Save(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNothingToSave) {
			return ctx.Status(fiber.StatusNotFound).
				JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save estimate", res))
}

func (c *galleryController) List(ctx *fiber.Ctx) error {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id"))
	}

	res, err := c.galleryService.List(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list saved estimates", res))
}

func (c *galleryController) ListAll(ctx *fiber.Ctx) error {
	res, err := c.galleryService.ListAll(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list gallery", res))
}

func (c *galleryController) Delete(ctx *fiber.Ctx) error {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid user id"))
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid estimate id"))
	}

	if err := c.galleryService.Delete(ctx.Context(), userId, id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete saved estimate", nil))
}

func (c *galleryController) Share(ctx *fiber.Ctx) error {
	var req dto.ShareEstimateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.galleryService.Share(ctx.Context(), &req); err != nil {
		if errors.Is(err, service.ErrNothingToSave) {
			return ctx.Status(fiber.StatusNotFound).
				JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success share estimate", nil))
}
