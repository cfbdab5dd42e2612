package suggest_alternatives

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	suggestAlternatives "github.com/katiabooking/KB-BookingService/internal/usecase/suggest_alternatives"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC 3339"
	msgMasterNotFound     = "мастер не найден"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase SuggestAlternativesUseCase
	logger  Logger
}

func NewHandler(useCase SuggestAlternativesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/masters/{masterId}/suggest-alternatives
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/suggest-alternatives - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	var req SuggestAlternativesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters/{id}/suggest-alternatives - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(masterID)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/suggest-alternatives - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, suggestAlternatives.ErrMasterNotFound):
			h.logger.Warn("POST /masters/{id}/suggest-alternatives - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, suggestAlternatives.ErrInvalidInput):
			h.logger.Warn("POST /masters/{id}/suggest-alternatives - Invalid input: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /masters/{id}/suggest-alternatives - Failed to suggest: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /masters/{id}/suggest-alternatives - Suggested: master_id=%d, same_master=%d, same_time=%d",
		masterID, len(result.SameMaster), len(result.SameTime))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
