package controller

import (
	"strconv"

	"pc-estimate-be/internal/dto"
	"pc-estimate-be/internal/pkg/serverutils"
	"pc-estimate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListByCategory(ctx *fiber.Ctx) error
}

type productController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) IProductController {
	return &productController{
		productService: productService,
	}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/product/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("ingest", c.Ingest)
	h.Get("list", c.List)
	h.Get("category/:category", c.ListByCategory)
}

func (c *productController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestProductsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.productService.Ingest(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest products", res))
}

func (c *productController) List(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	category := ctx.Query("category")

	res, err := c.productService.List(ctx.Context(), page, limit, category)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list products", res))
}

func (c *productController) ListByCategory(ctx *fiber.Ctx) error {
	category := ctx.Params("category")
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	res, err := c.productService.ListByCategory(ctx.Context(), category, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list products", res))
}
