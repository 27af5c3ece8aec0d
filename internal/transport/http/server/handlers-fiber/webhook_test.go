package handlers_fiber

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pull-request-notifier/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ucMock struct{ mock.Mock }

func (m *ucMock) SyncProjects(ctx context.Context) ([]entities.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Project), args.Error(1)
}

func (m *ucMock) SyncPullRequests(ctx context.Context, project entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ucMock) SyncAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *ucMock) HandleWebhook(ctx context.Context, eventKey string, body []byte) error {
	args := m.Called(ctx, eventKey, body)
	return args.Error(0)
}

func webhookApp(uc *ucMock) *fiber.App {
	app := fiber.New()
	h := NewHandler(zap.NewNop().Sugar(), uc, nil, nil)
	app.Post("/webhook", h.PostWebhook)
	return app
}

func TestPostWebhookMissingEventKey(t *testing.T) {
	uc := &ucMock{}
	app := webhookApp(uc)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	uc.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostWebhookInvalidJSON(t *testing.T) {
	uc := &ucMock{}
	app := webhookApp(uc)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`not json`))
	req.Header.Set(HeaderEventKey, "pullrequest:created")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	uc.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostWebhookDelegates(t *testing.T) {
	uc := &ucMock{}
	app := webhookApp(uc)

	body := `{"pullrequest": {"id": 1}}`
	uc.On("HandleWebhook", mock.Anything, "pullrequest:updated", []byte(body)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(HeaderEventKey, "pullrequest:updated")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestPostWebhookHandlingFailureStillReturns200(t *testing.T) {
	// Fan-out failures must not make the sender retry-storm us.
	uc := &ucMock{}
	app := webhookApp(uc)

	uc.On("HandleWebhook", mock.Anything, "pullrequest:created", mock.Anything).
		Return(errors.New("remote fetch failed"))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	req.Header.Set(HeaderEventKey, "pullrequest:created")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookRouteRejectsGet(t *testing.T) {
	uc := &ucMock{}
	app := webhookApp(uc)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
