package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"parking-marketplace/internal/usecase"
	"parking-marketplace/pkg/apperror"
	"parking-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Wallet  *WalletHandler
	Booking *BookingHandler
	Reward  *RewardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Wallet:  NewWalletHandler(service.Wallet, log),
		Booking: NewBookingHandler(service.Booking, service.BookingPayment, log),
		Reward:  NewRewardHandler(service.Reward, log),
	}
}

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body into dst. It writes the 400 itself and
// reports false when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			utils.ResponseBadRequest(w, "Request body is required", nil)
			return false
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError writes err with the status of its kind.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr := apperror.From(err)
	if appErr.Kind() == apperror.KindInternal {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
	} else {
		log.Debug(operation+" rejected",
			zap.String("code", appErr.Code()),
			zap.String("operation", operation))
	}
	utils.ResponseError(w, appErr)
}
