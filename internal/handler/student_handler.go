package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/school-records-api/internal/dto"
	"github.com/noah-isme/school-records-api/internal/service"
	"github.com/noah-isme/school-records-api/internal/utils"
)

// StudentHandler wires student HTTP routes.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student endpoints to the router group. Static segments
// go first; fiber matches routes in registration order.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/with-teacher", h.listWithTeacher)
	router.Get("/without-teacher", h.listUnassigned)
	router.Get("/search", h.search)
	router.Get("/enrolled-between", h.listEnrolledBetween)
	router.Get("/enrolled-after", h.listEnrolledAfter)
	router.Get("/email/:email", h.getByEmail)
	router.Get("/student-id/:studentNumber", h.getByStudentNumber)
	router.Get("/grade/:gradeLevel/count", h.countByGradeLevel)
	router.Get("/grade/:gradeLevel", h.listByGradeLevel)
	router.Get("/teacher/:teacherId/count", h.countByTeacher)
	router.Get("/teacher/:teacherId", h.listByTeacher)
	router.Get("/teacher-subject/:subject", h.listByTeacherSubject)
	router.Get("/:id/exists", h.exists)
	router.Get("/:id", h.get)
	router.Put("/:studentId/assign-teacher/:teacherId", h.assignTeacher)
	router.Put("/:studentId/remove-teacher", h.removeTeacher)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) listWithTeacher(c *fiber.Ctx) error {
	students, err := h.service.ListWithTeacher(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) listUnassigned(c *fiber.Ctx) error {
	students, err := h.service.ListUnassigned(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) search(c *fiber.Ctx) error {
	name, err := requiredQuery(c, "name")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.SearchByName(c.Context(), name)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) listEnrolledBetween(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.ListEnrolledBetween(c.Context(), start, end)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) listEnrolledAfter(c *fiber.Ctx) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.ListEnrolledAfter(c.Context(), date)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) getByEmail(c *fiber.Ctx) error {
	student, err := h.service.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) getByStudentNumber(c *fiber.Ctx) error {
	student, err := h.service.GetByStudentNumber(c.Context(), c.Params("studentNumber"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) listByGradeLevel(c *fiber.Ctx) error {
	students, err := h.service.ListByGradeLevel(c.Context(), c.Params("gradeLevel"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) listByTeacher(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "teacherId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.ListByTeacherID(c.Context(), teacherID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) listByTeacherSubject(c *fiber.Ctx) error {
	students, err := h.service.ListByTeacherSubject(c.Context(), c.Params("subject"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.StudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student updated", student)
}

func (h *StudentHandler) assignTeacher(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	teacherID, err := parseUintParam(c, "teacherId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := h.service.AssignTeacher(c.Context(), studentID, teacherID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher assigned", student)
}

func (h *StudentHandler) removeTeacher(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := h.service.RemoveTeacher(c.Context(), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher removed", student)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student deleted", fiber.Map{"id": id})
}

func (h *StudentHandler) exists(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	exists, err := h.service.Exists(c.Context(), id)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "student existence checked", exists)
}

func (h *StudentHandler) countByGradeLevel(c *fiber.Ctx) error {
	count, err := h.service.CountByGradeLevel(c.Context(), c.Params("gradeLevel"))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students counted", count)
}

func (h *StudentHandler) countByTeacher(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "teacherId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	count, err := h.service.CountByTeacherID(c.Context(), teacherID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "students counted", count)
}

func (h *StudentHandler) handleError(c *fiber.Ctx, err error) error {
	var conflict *service.ConflictError
	switch {
	case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrTeacherNotFound):
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

func (h *StudentHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
