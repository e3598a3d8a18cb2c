package controller

import (
	"errors"

	"pc-estimate-be/internal/dto"
	"pc-estimate-be/internal/pkg/serverutils"
	"pc-estimate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEstimateController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type estimateController struct {
	estimateService service.IEstimateService
}

func NewEstimateController(estimateService service.IEstimateService) IEstimateController {
	return &estimateController{
		estimateService: estimateService,
	}
}

func (c *estimateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/estimate/v1")
	h.Post("query", c.Query)
}

func (c *estimateController) Query(ctx *fiber.Ctx) error {
	var req dto.EstimateQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.estimateService.Query(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoCandidates) || errors.Is(err, service.ErrIncompleteEstimate) {
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(serverutils.ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
		}
		return ctx.Status(fiber.StatusBadGateway).
			JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate estimate", res))
}
