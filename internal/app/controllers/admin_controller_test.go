package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/app/services"
	"github.com/tnpcell/portal/internal/middleware"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// -------- test fakes --------

type stubAdminStore struct{}

func (stubAdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return nil, apperrors.ErrAdminNotFound
}

type stubStudentAdminStore struct {
	students []models.Student
}

func (s *stubStudentAdminStore) ListByStatus(ctx context.Context, status models.StudentStatus) ([]models.Student, error) {
	var out []models.Student
	for _, st := range s.students {
		if st.Status == status {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *stubStudentAdminStore) ListAll(ctx context.Context) ([]models.Student, error) {
	return s.students, nil
}

func (s *stubStudentAdminStore) UpdateApproval(ctx context.Context, rollNumber string, approve bool) error {
	return apperrors.ErrStudentNotFound
}

func (s *stubStudentAdminStore) BulkUpdateApproval(ctx context.Context, rollNumbers []string, approve bool) (int64, error) {
	return 0, nil
}

func (s *stubStudentAdminStore) DeleteCascade(ctx context.Context, id int64) error {
	return apperrors.ErrStudentNotFound
}

func (s *stubStudentAdminStore) BulkDeleteCascade(ctx context.Context, rollNumbers []string) (int64, error) {
	return 0, nil
}

// -------- helpers --------

func newAdminListController(students []models.Student) *AdminController {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  time.Hour,
		TokenIssuer: "test",
	})
	svc := services.NewAdminService(stubAdminStore{}, &stubStudentAdminStore{students: students}, jwtService, zerolog.Nop())
	m := middleware.NewAuthMiddleware(jwtService, middleware.CookieConfig{Name: "tnp_session"})
	return NewAdminController(svc, m, zerolog.Nop())
}

func decodeProfiles(t *testing.T, w *httptest.ResponseRecorder) []dto.StudentProfile {
	t.Helper()
	var body struct {
		Data []dto.StudentProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

// -------- tests --------

func TestListPendingStudents_ReturnsProfiles(t *testing.T) {
	now := time.Now()
	controller := newAdminListController([]models.Student{
		{ID: 1, Email: "asha@college.edu", RollNumber: "CS2021001", Name: "Asha Verma", Status: models.StatusPending},
		{ID: 2, Email: "ravi@college.edu", RollNumber: "CS2021002", Name: "Ravi Kumar", Status: models.StatusApproved, RegisteredAt: &now},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/students/pending", nil)
	controller.ListPendingStudents(c)

	require.Equal(t, http.StatusOK, w.Code)
	profiles := decodeProfiles(t, w)
	require.Len(t, profiles, 1)
	assert.Equal(t, "CS2021001", profiles[0].RollNumber)
	assert.Equal(t, models.StatusPending, profiles[0].Status)
}

func TestListStudents_ReturnsEveryProfile(t *testing.T) {
	now := time.Now()
	controller := newAdminListController([]models.Student{
		{ID: 1, Email: "asha@college.edu", RollNumber: "CS2021001", Name: "Asha Verma", Status: models.StatusPending},
		{ID: 2, Email: "ravi@college.edu", RollNumber: "CS2021002", Name: "Ravi Kumar", Status: models.StatusApproved, RegisteredAt: &now},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/students", nil)
	controller.ListStudents(c)

	require.Equal(t, http.StatusOK, w.Code)
	profiles := decodeProfiles(t, w)
	require.Len(t, profiles, 2)

	// Each profile mirrors its own source row, not a shared loop variable.
	assert.Equal(t, "asha@college.edu", profiles[0].Email)
	assert.Equal(t, "ravi@college.edu", profiles[1].Email)
	require.NotNil(t, profiles[1].RegisteredAt)
	assert.Nil(t, profiles[0].RegisteredAt)
}

func TestListStudents_EmptyListIsEmptyArray(t *testing.T) {
	controller := newAdminListController(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/students", nil)
	controller.ListStudents(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeProfiles(t, w))
}
