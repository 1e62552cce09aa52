package adaptor

import (
	"net/http"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/dto/request"
	"parking-marketplace/internal/usecase"
	"parking-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	payment usecase.BookingPaymentService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, payment usecase.BookingPaymentService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		payment: payment,
		log:     log.With(zap.String("handler", "booking")),
	}
}

func bookingIDParam(r *http.Request) (uuid.UUID, error) {
	return entity.ParseID("id", chi.URLParam(r, "id"))
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseBookingQuery(r.URL.Query())
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	page, err := h.service.ListBookings(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := bookingIDParam(r)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UploadScreenshot handles POST /api/bookings/{id}/payment-screenshot
func (h *BookingHandler) UploadScreenshot(w http.ResponseWriter, r *http.Request) {
	bookingID, err := bookingIDParam(r)
	if err != nil {
		handleServiceError(w, h.log, err, "upload screenshot")
		return
	}
	var req request.UploadScreenshotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		handleServiceError(w, h.log, err, "upload screenshot")
		return
	}

	booking, err := h.payment.UploadScreenshot(r.Context(), bookingID, input)
	if err != nil {
		handleServiceError(w, h.log, err, "upload screenshot")
		return
	}

	utils.ResponseSuccess(w, "Payment screenshot uploaded", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := bookingIDParam(r)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}
	var req request.CancelBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	reason, err := req.ToReason()
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	booking, err := h.payment.CancelBooking(r.Context(), bookingID, reason)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// ==================== ADMIN METHODS ====================

// VerifyPayment handles PUT /api/admin/bookings/{id}/verify-payment
func (h *BookingHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, err := bookingIDParam(r)
	if err != nil {
		handleServiceError(w, h.log, err, "verify payment")
		return
	}

	booking, err := h.payment.VerifyPayment(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "Payment verified", booking)
}

// RejectPayment handles PUT /api/admin/bookings/{id}/reject-payment
func (h *BookingHandler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, err := bookingIDParam(r)
	if err != nil {
		handleServiceError(w, h.log, err, "reject payment")
		return
	}
	var req request.RejectPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		handleServiceError(w, h.log, err, "reject payment")
		return
	}

	booking, err := h.payment.RejectPayment(r.Context(), bookingID, input)
	if err != nil {
		handleServiceError(w, h.log, err, "reject payment")
		return
	}

	utils.ResponseSuccess(w, "Payment rejected", booking)
}
