package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"reservationmanager/internal/reservations/service"
	apperrors "reservationmanager/pkg/errors"
	httputil "reservationmanager/pkg/http"
	"reservationmanager/pkg/logger"
	"reservationmanager/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

// reservationRequest is the wire shape of a create request. Dates travel as
// calendar-date strings, never timestamps.
type reservationRequest struct {
	HolderName  string `json:"holder_name"`
	HolderEmail string `json:"holder_email"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type reservationUpdateRequest struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

type reservationResponse struct {
	ID          string `json:"id"`
	HolderName  string `json:"holder_name"`
	HolderEmail string `json:"holder_email"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func toResponse(r *model.Reservation) reservationResponse {
	resp := reservationResponse{
		ID:          r.ID,
		HolderName:  r.HolderName,
		HolderEmail: r.HolderEmail,
		StartDate:   r.StartDate.Format(httputil.DateLayout),
		EndDate:     r.EndDate.Format(httputil.DateLayout),
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toResponseList(reservations []*model.Reservation) []reservationResponse {
	responses := make([]reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		responses = append(responses, toResponse(r))
	}
	return responses
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	startDate, err := httputil.ParseDate(req.StartDate)
	if err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("invalid start_date: expected "+httputil.DateLayout))
		return
	}
	endDate, err := httputil.ParseDate(req.EndDate)
	if err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("invalid end_date: expected "+httputil.DateLayout))
		return
	}

	reservation := &model.Reservation{
		HolderName:  req.HolderName,
		HolderEmail: req.HolderEmail,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := h.service.Create(r.Context(), reservation); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, toResponse(reservation)); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	reservation, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, toResponse(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from, to, err := httputil.ExtractDateRange(r)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	reservations, err := h.service.FindBetween(r.Context(), from, to)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, toResponseList(reservations)); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req reservationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	updates := &model.ReservationUpdate{}
	if req.StartDate != nil {
		startDate, err := httputil.ParseDate(*req.StartDate)
		if err != nil {
			h.writeError(w, "Update", apperrors.InvalidInput("invalid start_date: expected "+httputil.DateLayout))
			return
		}
		updates.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := httputil.ParseDate(*req.EndDate)
		if err != nil {
			h.writeError(w, "Update", apperrors.InvalidInput("invalid end_date: expected "+httputil.DateLayout))
			return
		}
		updates.EndDate = &endDate
	}

	reservation, err := h.service.Edit(r.Context(), id, updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, toResponse(reservation)); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Cancel(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.Search)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.PATCH("/api/v1/reservations/id/:id", h.Update)
	router.DELETE("/api/v1/reservations/id/:id", h.Delete)
}
