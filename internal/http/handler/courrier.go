package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gecapi/internal/model"
	"gecapi/internal/service"
	"gecapi/internal/workflow"
)

// ListEntities godoc
// @Summary  List entities a courrier can be sent to
// @Tags     directory
// @Produce  json
// @Success  200 {array} model.Entity
// @Router   /entities [get]
func ListEntities(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entities, err := svc.Entities(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if entities == nil {
			entities = []model.Entity{}
		}
		return c.JSON(entities)
	}
}

// CreateCourrier godoc
// @Summary  Register a courrier and send it to its first destinations
// @Tags     courriers
// @Accept   json
// @Produce  json
// @Param    body body workflow.CreateCourrierInput true "courrier"
// @Success  201 {object} model.Courrier
// @Failure  422 {object} errorPayload
// @Router   /courriers [post]
func CreateCourrier(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in workflow.CreateCourrierInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		created, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// ListCourriers godoc
// @Summary  List courriers, most recent first
// @Tags     courriers
// @Produce  json
// @Param    flow     query string false "entrant or sortant"
// @Param    status   query string false "in_progress, closed or archived"
// @Param    priorite query string false "basse, normale, haute or urgente"
// @Param    entity   query string false "entity that held the courrier at any point"
// @Param    holder   query string false "user holding an active node"
// @Param    q        query string false "search in number, objet and expediteur"
// @Param    limit    query int    false "page size" default(10)
// @Param    offset   query int    false "page offset" default(0)
// @Success  200 {object} service.CourrierListResult
// @Router   /courriers [get]
func ListCourriers(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		req := listRequest(c)
		req.Limit = limit
		req.Offset = offset

		res, err := svc.List(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CourrierStats godoc
// @Summary  Dashboard counters over the courriers matching the filters
// @Tags     courriers
// @Produce  json
// @Success  200 {object} model.Stats
// @Router   /courriers/stats [get]
func CourrierStats(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext(), listRequest(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

// GetCourrier godoc
// @Summary  Get a courrier with its routing graph
// @Tags     courriers
// @Produce  json
// @Param    id path string true "courrier id"
// @Success  200 {object} model.Courrier
// @Failure  404 {object} errorPayload
// @Router   /courriers/{id} [get]
func GetCourrier(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courrier, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(courrier)
	}
}

// CourrierHistory godoc
// @Summary  Courrier timeline, most recent first
// @Tags     courriers
// @Produce  json
// @Param    id path string true "courrier id"
// @Success  200 {array} model.HistoryEntry
// @Router   /courriers/{id}/history [get]
func CourrierHistory(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := svc.History(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(entries)
	}
}

// CourrierDocuments godoc
// @Summary  Every document attached to a courrier
// @Tags     courriers
// @Produce  json
// @Param    id path string true "courrier id"
// @Success  200 {array} model.DataDocument
// @Router   /courriers/{id}/documents [get]
func CourrierDocuments(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.Documents(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// TransmitCourrier godoc
// @Summary  Forward a courrier from one of its active nodes
// @Tags     workflow
// @Accept   json
// @Produce  json
// @Param    id     path string true "courrier id"
// @Param    nodeId path string true "source node id"
// @Param    body   body workflow.TransmitInput true "recipients"
// @Success  201 {object} service.MutationResult
// @Failure  409 {object} errorPayload
// @Router   /courriers/{id}/nodes/{nodeId}/transmit [post]
func TransmitCourrier(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in workflow.TransmitInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		in.SourceNodeID = c.Params("nodeId")

		res, err := svc.Transmit(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ApplyAction godoc
// @Summary  Record an action on a node
// @Tags     workflow
// @Accept   json
// @Produce  json
// @Param    id     path string true "courrier id"
// @Param    nodeId path string true "node id"
// @Param    body   body workflow.ApplyActionInput true "action"
// @Success  201 {object} service.MutationResult
// @Failure  422 {object} errorPayload
// @Router   /courriers/{id}/nodes/{nodeId}/actions [post]
func ApplyAction(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in workflow.ApplyActionInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		in.NodeID = c.Params("nodeId")

		res, err := svc.ApplyAction(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// MarkRead godoc
// @Summary  Mark a node as read by its holder
// @Tags     workflow
// @Produce  json
// @Param    id     path string true "courrier id"
// @Param    nodeId path string true "node id"
// @Success  200 {object} model.Courrier
// @Router   /courriers/{id}/nodes/{nodeId}/read [post]
func MarkRead(svc service.CourrierService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courrier, err := svc.MarkRead(c.UserContext(), c.Params("id"), c.Params("nodeId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(courrier)
	}
}

func listRequest(c *fiber.Ctx) service.ListRequest {
	return service.ListRequest{
		Flow:     model.Flow(c.Query("flow")),
		Status:   model.CourrierStatus(c.Query("status")),
		Priority: c.Query("priorite"),
		EntityID: c.Query("entity"),
		HolderID: c.Query("holder"),
		Search:   c.Query("q"),
	}
}
