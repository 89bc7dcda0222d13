package events

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sec-tools/inspector-notify/pkg/models/api"
	"github.com/sec-tools/inspector-notify/pkg/models/domain"
	"github.com/sec-tools/inspector-notify/pkg/services/pipeline"
)

type Handler struct {
	controller pipeline.Controller
}

func NewHandler(controller pipeline.Controller) *Handler {
	return &Handler{controller: controller}
}

// ProcessEvent feeds the request body to the pipeline and maps the
// outcome onto a status code: ignored and published are 200, rejections
// keep the classification visible (400 structural, 408 deadline,
// 500 configuration, 502 publish).
func (h *Handler) ProcessEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeResponse(w, logger, http.StatusBadRequest, api.ProcessResponse{
			Outcome: string(domain.OutcomeRejected),
			Error:   "cannot read request body",
		})
		return
	}

	result, err := h.controller.Process(ctx, payload)

	response := api.ProcessResponse{
		Outcome:    string(result.Outcome),
		Reason:     result.Reason,
		MessageID:  result.MessageID,
		FindingARN: result.FindingARN,
	}
	if err != nil {
		response.Error = err.Error()
	}

	writeResponse(w, logger, statusFor(err), response)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrMalformedEvent), errors.Is(err, domain.ErrMissingDetail):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDeadline):
		return http.StatusRequestTimeout
	case errors.Is(err, domain.ErrPublish):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeResponse(w http.ResponseWriter, logger *zerolog.Logger, status int, body api.ProcessResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
