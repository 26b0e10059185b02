package http

import (
	"errors"
	"io"
	"log/slog"

	"portfolio-customizer/internal/domain"
	"portfolio-customizer/internal/editor"
	"portfolio-customizer/internal/model"
	"portfolio-customizer/internal/usecase"
	ai "portfolio-customizer/pkg/ai"
	"portfolio-customizer/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	svc    *usecase.Service
	logger *slog.Logger
}

func NewHandler(svc *usecase.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts every route on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/themes", h.ListThemes)
	r.Get("/templates", h.ListTemplates)

	r.Post("/resumes/extract", h.ExtractResume)
	r.Post("/portfolios/generate", h.Generate)
	r.Get("/portfolios", h.ListPortfolios)
	r.Post("/portfolios/:id/open", h.OpenPortfolio)

	s := r.Group("/sessions")
	r.Post("/sessions", h.OpenSession)
	s.Get("/:id", h.GetSession)
	s.Delete("/:id", h.CloseSession)
	s.Post("/:id/select", h.Select)
	s.Delete("/:id/selection", h.ClearSelection)
	s.Patch("/:id/style", h.SetStyle)
	s.Put("/:id/content", h.SetContent)
	s.Put("/:id/attributes", h.SetAttribute)
	s.Delete("/:id/attributes/:name", h.RemoveAttribute)
	s.Post("/:id/clone", h.Clone)
	s.Post("/:id/templates", h.InsertTemplate)
	s.Delete("/:id/element", h.RemoveElement)
	s.Post("/:id/theme", h.ApplyTheme)
	s.Post("/:id/undo", h.Undo)
	s.Post("/:id/redo", h.Redo)
	s.Post("/:id/save", h.Save)
	s.Get("/:id/links", h.Links)
	s.Get("/:id/export.pdf", h.ExportPDF)
	s.Get("/:id/export.html", h.ExportHTML)
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// fail maps err to a status and a message fit for the person editing.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload", "details": ve.Problems})
	case errors.Is(err, usecase.ErrSessionNotFound):
		return errorJSON(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrPortfolioNotFound):
		return errorJSON(c, fiber.StatusNotFound, "portfolio not found")
	case errors.Is(err, editor.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, editor.ErrNotFound.Error())
	case errors.Is(err, editor.ErrNoSelection),
		errors.Is(err, editor.ErrNotContainer),
		errors.Is(err, editor.ErrEmptyContainer),
		errors.Is(err, editor.ErrProtectedElement),
		errors.Is(err, editor.ErrNoHead),
		errors.Is(err, editor.ErrEmptyDocument):
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ai.ErrGenerationFailed):
		h.logger.Error("generation failed", "error", err)
		return errorJSON(c, fiber.StatusBadGateway, ai.ErrGenerationFailed.Error())
	case errors.Is(err, extract.ErrTooLarge):
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, extract.ErrUnsupported):
		return errorJSON(c, fiber.StatusUnprocessableEntity, extract.ErrUnsupported.Error())
	}
	h.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return errorJSON(c, fiber.StatusInternalServerError, "internal error")
}

func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, &model.ValidationError{Problems: []string{"invalid session id"}}
	}
	return id, nil
}

// edit decodes nothing; it runs fn on the addressed session and writes the
// resulting view.
func (h *Handler) edit(c *fiber.Ctx, fn func(e *editor.Editor) error) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	v, err := h.svc.Edit(id, fn)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(v)
}

func (h *Handler) ListThemes(c *fiber.Ctx) error {
	return c.JSON(editor.Themes())
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(editor.TemplateKinds())
}

func (h *Handler) ExtractResume(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.svc.Extract(fh.Filename, data)
	if err != nil {
		h.logger.Info("extraction failed", "file", fh.Filename, "error", err)
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	var req model.GenerateRequest
	if err := model.Decode(model.SchemaGenerate, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	res, err := h.svc.Generate(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) ListPortfolios(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "userId is required")
	}
	list, err := h.svc.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	if list == nil {
		list = []domain.PortfolioSummary{}
	}
	return c.JSON(list)
}

func (h *Handler) OpenPortfolio(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid portfolio id")
	}
	v, err := h.svc.OpenSaved(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *Handler) OpenSession(c *fiber.Ctx) error {
	var req model.OpenRequest
	if err := model.Decode(model.SchemaOpen, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	v, err := h.svc.Open(req.HTML)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	sess, err := h.svc.Session(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess.View())
}

func (h *Handler) CloseSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	h.svc.Close(id)
	return c.SendStatus(fiber.StatusNoContent)
}
