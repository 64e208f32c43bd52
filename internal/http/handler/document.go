package handler

import (
	"github.com/gofiber/fiber/v2"

	"gecapi/internal/service"
)

// UploadDocument godoc
// @Summary  Upload a file to attach with a joindre_document action
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "document"
// @Success  201 {object} model.DataDocument
// @Router   /documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DocumentURL godoc
// @Summary  Temporary download link for an uploaded document
// @Tags     documents
// @Produce  json
// @Param    key path string true "object key, e.g. courriers/<uuid>.pdf"
// @Success  200 {object} map[string]string
// @Router   /documents/{key} [get]
func DocumentURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.PresignURL(c.UserContext(), c.Params("*"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteDocument godoc
// @Summary  Delete an uploaded document
// @Tags     documents
// @Param    key path string true "object key"
// @Success  204
// @Router   /documents/{key} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("*")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
