package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/school-records-api/internal/dto"
	"github.com/noah-isme/school-records-api/internal/service"
	"github.com/noah-isme/school-records-api/internal/utils"
)

// TeacherHandler wires teacher HTTP routes.
type TeacherHandler struct {
	service service.TeacherService
	logger  zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(service service.TeacherService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches teacher endpoints to the router group.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/with-students", h.listWithStudents)
	router.Get("/search", h.search)
	router.Get("/email/:email", h.getByEmail)
	router.Get("/department/:department/with-students", h.listByDepartmentWithStudents)
	router.Get("/department/:department/count", h.countByDepartment)
	router.Get("/department/:department", h.listByDepartment)
	router.Get("/subject/:subject", h.listBySubject)
	router.Get("/:id/exists", h.exists)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *TeacherHandler) create(c *fiber.Ctx) error {
	var payload dto.TeacherRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	teacher, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "teacher created", teacher)
}

func (h *TeacherHandler) list(c *fiber.Ctx) error {
	teachers, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) listWithStudents(c *fiber.Ctx) error {
	teachers, err := h.service.ListWithStudents(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) search(c *fiber.Ctx) error {
	name, err := requiredQuery(c, "name")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	teachers, err := h.service.SearchByName(c.Context(), name)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	teacher, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher retrieved", teacher)
}

func (h *TeacherHandler) getByEmail(c *fiber.Ctx) error {
	teacher, err := h.service.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher retrieved", teacher)
}

func (h *TeacherHandler) listByDepartment(c *fiber.Ctx) error {
	teachers, err := h.service.ListByDepartment(c.Context(), c.Params("department"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) listBySubject(c *fiber.Ctx) error {
	teachers, err := h.service.ListBySubject(c.Context(), c.Params("subject"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) listByDepartmentWithStudents(c *fiber.Ctx) error {
	teachers, err := h.service.ListByDepartmentWithStudents(c.Context(), c.Params("department"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TeacherRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	teacher, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher updated", teacher)
}

func (h *TeacherHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher deleted", fiber.Map{"id": id})
}

func (h *TeacherHandler) exists(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	exists, err := h.service.Exists(c.Context(), id)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teacher existence checked", exists)
}

func (h *TeacherHandler) countByDepartment(c *fiber.Ctx) error {
	count, err := h.service.CountByDepartment(c.Context(), c.Params("department"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "teachers counted", count)
}

func (h *TeacherHandler) handleError(c *fiber.Ctx, err error) error {
	var conflict *service.ConflictError
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		// The message names the identifier that was searched.
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &conflict):
		return utils.SendError(c, fiber.StatusBadRequest, conflict.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *TeacherHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
