package wire

import (
	"parking-marketplace/internal/adaptor"
	"parking-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, limiter *middleware.RateLimiter) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings)
		r.Get("/{id}", bookingHandler.GetBooking)

		r.With(limiter.Handler).Post("/{id}/payment-screenshot", bookingHandler.UploadScreenshot)
		r.With(limiter.Handler).Put("/{id}/cancel", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	// Authentication and the admin role are enforced by the gateway in front of this service.
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(limiter.Handler)

		r.Put("/{id}/verify-payment", bookingHandler.VerifyPayment)
		r.Put("/{id}/reject-payment", bookingHandler.RejectPayment)
	})
}
