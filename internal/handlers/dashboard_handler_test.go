package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/auth/middleware"
	"github.com/skillgateway/backend/internal/models"
)

// stubDashboardService is a mock implementation of DashboardService
type stubDashboardService struct {
	avatarCalled  bool
	receivedBytes int64
}

func (m *stubDashboardService) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	return &models.Profile{ID: userID}, nil
}

func (m *stubDashboardService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.Profile, error) {
	return &models.Profile{ID: userID}, nil
}

func (m *stubDashboardService) UpdateAvatar(ctx context.Context, userID int, filename string, file io.Reader) (string, error) {
	m.avatarCalled = true
	n, err := io.Copy(io.Discard, file)
	if err != nil {
		return "", err
	}
	m.receivedBytes = n
	return "/uploads/avatars/stored.png", nil
}

func (m *stubDashboardService) Overview(ctx context.Context, userID int) (*models.Overview, error) {
	return &models.Overview{}, nil
}

func (m *stubDashboardService) Courses(ctx context.Context, userID int) ([]models.EnrolledCourse, error) {
	return nil, nil
}

func (m *stubDashboardService) Payments(ctx context.Context, userID int) ([]models.PaymentHistoryItem, error) {
	return nil, nil
}

func (m *stubDashboardService) Activity(ctx context.Context, userID int) ([]models.ActivityEntry, error) {
	return nil, nil
}

func (m *stubDashboardService) Notifications(ctx context.Context, userID int) ([]models.Notification, error) {
	return nil, nil
}

func (m *stubDashboardService) MarkNotificationsRead(ctx context.Context, userID int) error {
	return nil
}

func (m *stubDashboardService) Tickets(ctx context.Context, userID int) ([]models.SupportTicket, error) {
	return nil, nil
}

func (m *stubDashboardService) CreateTicket(ctx context.Context, userID int, req *models.CreateTicketRequest) error {
	return nil
}

// stubSessionReader is a mock implementation of middleware.SessionReader
type stubSessionReader struct {
	user *models.SessionUser
}

func (m *stubSessionReader) Get(ctx context.Context, sid string) (*models.SessionUser, error) {
	return m.user, nil
}

// newSessionRouter mounts the dashboard routes behind a real session
// middleware and returns a signed cookie for the test user
func newSessionRouter(t *testing.T, service DashboardService, maxAvatarSize int64) (*chi.Mux, *http.Cookie) {
	t.Helper()

	cookies := sessions.NewCookieStore([]byte("test-secret"))
	rec := httptest.NewRecorder()
	require.NoError(t, middleware.SetSessionCookie(rec, httptest.NewRequest(http.MethodGet, "/", nil), cookies, "sid-123"))
	result := rec.Result()
	require.NotEmpty(t, result.Cookies())

	reader := &stubSessionReader{user: &models.SessionUser{ID: 7, Username: "asha"}}
	r := chi.NewRouter()
	handler := NewDashboardHandler(service, maxAvatarSize, zap.NewNop())
	handler.RegisterRoutes(r, middleware.SessionMiddleware(cookies, reader))

	return r, result.Cookies()[0]
}

// avatarRequest builds a multipart POST with one avatar file of the given size
func avatarRequest(t *testing.T, cookie *http.Cookie, size int) *http.Request {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/avatar", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(cookie)
	return req
}

func TestDashboardHandler_UploadAvatar(t *testing.T) {
	const maxAvatarSize = 2 << 20

	t.Run("accepts a file under the limit", func(t *testing.T) {
		service := &stubDashboardService{}
		router, cookie := newSessionRouter(t, service, maxAvatarSize)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, avatarRequest(t, cookie, 512))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, service.avatarCalled)
		assert.Equal(t, int64(512), service.receivedBytes)
		assert.Contains(t, rec.Body.String(), "/uploads/avatars/stored.png")
	})

	t.Run("rejects a file over the limit", func(t *testing.T) {
		service := &stubDashboardService{}
		router, cookie := newSessionRouter(t, service, maxAvatarSize)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, avatarRequest(t, cookie, 8<<20))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.False(t, service.avatarCalled)
	})

	t.Run("requires a session", func(t *testing.T) {
		service := &stubDashboardService{}
		router, _ := newSessionRouter(t, service, maxAvatarSize)

		req := httptest.NewRequest(http.MethodPost, "/api/dashboard/avatar", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, service.avatarCalled)
	})
}
