package events

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sec-tools/inspector-notify/pkg/models/api"
	"github.com/sec-tools/inspector-notify/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) Process(ctx context.Context, payload json.RawMessage) (domain.Result, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(domain.Result), args.Error(1)
}

func setupRouter(controller *mockController) *chi.Mux {
	router := chi.NewRouter()
	router.Post("/api/v1/events", NewHandler(controller).ProcessEvent)
	return router
}

func TestProcessEvent(t *testing.T) {
	tests := []struct {
		name           string
		result         domain.Result
		err            error
		expectedStatus int
	}{
		{
			name: "published",
			result: domain.Result{
				Outcome:    domain.OutcomePublished,
				MessageID:  "msg-123",
				FindingARN: "arn:aws:inspector2:us-west-2:123456789012:finding/abc",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "ignored",
			result: domain.Result{
				Outcome: domain.OutcomeIgnored,
				Reason:  "source is not aws.inspector2",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "structural rejection",
			result: domain.Result{
				Outcome: domain.OutcomeRejected,
				Reason:  "invalid event structure: missing detail",
			},
			err:            domain.ErrMissingDetail,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "deadline rejection",
			result: domain.Result{
				Outcome: domain.OutcomeRejected,
				Reason:  "insufficient execution time remaining",
			},
			err:            domain.ErrDeadline,
			expectedStatus: http.StatusRequestTimeout,
		},
		{
			name: "missing configuration",
			result: domain.Result{
				Outcome: domain.OutcomeRejected,
				Reason:  "missing required configuration: sns topic arn",
			},
			err:            domain.ErrMissingTopic,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "publish failure",
			result: domain.Result{
				Outcome: domain.OutcomeRejected,
				Reason:  "publish failed",
			},
			err:            domain.ErrPublish,
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := &mockController{}
			controller.On("Process", mock.Anything, mock.Anything).Return(tt.result, tt.err)

			req := httptest.NewRequest(
				http.MethodPost,
				"/api/v1/events",
				bytes.NewReader([]byte(`{"source":"aws.inspector2"}`)),
			)
			rec := httptest.NewRecorder()

			setupRouter(controller).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response api.ProcessResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, string(tt.result.Outcome), response.Outcome)
			assert.Equal(t, tt.result.MessageID, response.MessageID)
			if tt.err != nil {
				assert.NotEmpty(t, response.Error)
			}
			controller.AssertExpectations(t)
		})
	}
}

func TestProcessEventForwardsPayload(t *testing.T) {
	controller := &mockController{}
	controller.On("Process", mock.Anything, mock.Anything).
		Return(domain.Result{Outcome: domain.OutcomeIgnored}, nil)

	payload := []byte(`{"source":"other.service"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	setupRouter(controller).ServeHTTP(rec, req)

	require.Len(t, controller.Calls, 1)
	assert.JSONEq(t, string(payload), string(controller.Calls[0].Arguments.Get(1).(json.RawMessage)))
}
