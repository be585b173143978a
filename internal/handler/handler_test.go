package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/school-records-api/internal/handler"
	"github.com/noah-isme/school-records-api/internal/models"
	"github.com/noah-isme/school-records-api/internal/repository"
	"github.com/noah-isme/school-records-api/internal/service"
)

// newTestApp wires real services over an in-memory store so handler tests
// exercise routing, status mapping, and persistence together.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Teacher{}, &models.Student{}))

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)

	studentService := service.NewStudentService(studentRepo, teacherRepo, validate, logger)
	teacherService := service.NewTeacherService(teacherRepo, validate, logger)

	app := fiber.New()
	handler.NewStudentHandler(studentService, logger).Register(app.Group("/student"))
	handler.NewTeacherHandler(teacherService, logger).Register(app.Group("/teacher"))

	return app
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, apiEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope apiEnvelope
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return resp, envelope
}

func decodeData(t *testing.T, envelope apiEnvelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}
