package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oculairmedia/keep-mcp/internal/dto"
	"github.com/oculairmedia/keep-mcp/internal/pkg/serverutils"
	"github.com/oculairmedia/keep-mcp/internal/service"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{noteService: noteService}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("/search", c.Search)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *noteController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("query", "")

	res, err := c.noteService.Search(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// List is search with an empty query.
func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.Search(ctx.Context(), "")
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.noteService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.noteService.Delete(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
