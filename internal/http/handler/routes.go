package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"gecapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate HTTP to service calls; the workflow lives below.
func RegisterRoutes(app *fiber.App, db *sql.DB, courrierSvc service.CourrierService, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/entities", ListEntities(courrierSvc))

	courriers := app.Group("/courriers")
	courriers.Post("/", CreateCourrier(courrierSvc))
	courriers.Get("/", ListCourriers(courrierSvc))
	// Registered before /:id so "stats" is not taken for an id.
	courriers.Get("/stats", CourrierStats(courrierSvc))
	courriers.Get("/:id", GetCourrier(courrierSvc))
	courriers.Get("/:id/history", CourrierHistory(courrierSvc))
	courriers.Get("/:id/documents", CourrierDocuments(courrierSvc))
	courriers.Post("/:id/nodes/:nodeId/transmit", TransmitCourrier(courrierSvc))
	courriers.Post("/:id/nodes/:nodeId/actions", ApplyAction(courrierSvc))
	courriers.Post("/:id/nodes/:nodeId/read", MarkRead(courrierSvc))

	app.Post("/documents", UploadDocument(docSvc))
	app.Get("/documents/*", DocumentURL(docSvc))
	app.Delete("/documents/*", DeleteDocument(docSvc))
}
