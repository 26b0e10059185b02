package http

import (
	"portfolio-customizer/internal/editor"
	"portfolio-customizer/internal/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Select(c *fiber.Ctx) error {
	var req model.SelectRequest
	if err := model.Decode(model.SchemaSelect, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	path := make(editor.ElementPath, len(req.Path))
	for i, raw := range req.Path {
		path[i] = editor.ParseSegment(raw)
	}
	return h.edit(c, func(e *editor.Editor) error {
		if req.Click {
			return e.Click(path)
		}
		return e.Select(path)
	})
}

func (h *Handler) ClearSelection(c *fiber.Ctx) error {
	return h.edit(c, func(e *editor.Editor) error {
		e.ClearSelection()
		return nil
	})
}

func (h *Handler) SetStyle(c *fiber.Ctx) error {
	var req model.StyleRequest
	if err := model.Decode(model.SchemaStyle, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	return h.edit(c, func(e *editor.Editor) error {
		return e.SetStyle(req.Property, req.Value)
	})
}

func (h *Handler) SetContent(c *fiber.Ctx) error {
	var req model.ContentRequest
	if err := model.Decode(model.SchemaContent, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	return h.edit(c, func(e *editor.Editor) error {
		return e.SetContent(req.Content)
	})
}

func (h *Handler) SetAttribute(c *fiber.Ctx) error {
	var req model.AttributeRequest
	if err := model.Decode(model.SchemaAttribute, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	return h.edit(c, func(e *editor.Editor) error {
		return e.SetAttribute(req.Name, req.Value)
	})
}

func (h *Handler) RemoveAttribute(c *fiber.Ctx) error {
	name := c.Params("name")
	return h.edit(c, func(e *editor.Editor) error {
		return e.RemoveAttribute(name)
	})
}

func (h *Handler) Clone(c *fiber.Ctx) error {
	return h.edit(c, func(e *editor.Editor) error {
		return e.CloneLastChild()
	})
}

func (h *Handler) InsertTemplate(c *fiber.Ctx) error {
	var req model.TemplateRequest
	if err := model.Decode(model.SchemaTemplate, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	return h.edit(c, func(e *editor.Editor) error {
		return e.InsertTemplate(editor.TemplateKind(req.Kind))
	})
}

// RemoveElement needs confirm=true; removal is only undoable through
// history.
func (h *Handler) RemoveElement(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return errorJSON(c, fiber.StatusBadRequest, "Are you sure you want to delete this element? Repeat with confirm=true")
	}
	return h.edit(c, func(e *editor.Editor) error {
		return e.RemoveSelected()
	})
}

func (h *Handler) ApplyTheme(c *fiber.Ctx) error {
	var req model.ThemeRequest
	if err := model.Decode(model.SchemaTheme, c.Body(), &req); err != nil {
		return h.fail(c, err)
	}
	t, ok := editor.ThemeByName(req.Name)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "unknown theme "+req.Name)
	}
	return h.edit(c, func(e *editor.Editor) error {
		return e.ApplyTheme(t)
	})
}

func (h *Handler) Undo(c *fiber.Ctx) error {
	return h.edit(c, func(e *editor.Editor) error {
		_, err := e.Undo()
		return err
	})
}

func (h *Handler) Redo(c *fiber.Ctx) error {
	return h.edit(c, func(e *editor.Editor) error {
		_, err := e.Redo()
		return err
	})
}
