package http

import (
	"portfolio-customizer/internal/editor"
	"portfolio-customizer/internal/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Save(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req model.SaveRequest
	if err := model.Decode(model.SchemaSave, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	p, err := h.svc.Save(c.UserContext(), id, req.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"id": p.ID.String(), "title": p.Title, "theme": p.Theme, "updated_at": p.UpdatedAt})
}

func (h *Handler) Links(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var links []editor.Link
	if _, err := h.svc.Edit(id, func(e *editor.Editor) error {
		links = e.Links()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	if links == nil {
		links = []editor.Link{}
	}
	return c.JSON(links)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	pdf, err := h.svc.ExportPDF(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="portfolio.pdf"`)
	return c.Send(pdf)
}

func (h *Handler) ExportHTML(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	doc, err := h.svc.ExportHTML(id, c.QueryBool("minify", false))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="portfolio.html"`)
	return c.SendString(doc)
}
