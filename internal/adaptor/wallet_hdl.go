package adaptor

import (
	"net/http"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/internal/dto/request"
	"parking-marketplace/internal/usecase"
	"parking-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type WalletHandler struct {
	service usecase.WalletService
	log     *zap.Logger
}

func NewWalletHandler(service usecase.WalletService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log.With(zap.String("handler", "wallet")),
	}
}

// CreateWallet handles POST /api/wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req request.CreateWalletRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		handleServiceError(w, h.log, err, "create wallet")
		return
	}

	wallet, err := h.service.CreateWallet(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.log, err, "create wallet")
		return
	}

	utils.ResponseCreated(w, "Wallet created", wallet)
}

// GetWallet handles GET /api/wallets?userId=
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := entity.ParseID("userId", r.URL.Query().Get("userId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get wallet")
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get wallet")
		return
	}

	utils.ResponseSuccess(w, "success", wallet)
}

// AddMoney handles POST /api/wallets/add-money
func (h *WalletHandler) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req request.WalletAmountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		handleServiceError(w, h.log, err, "add money")
		return
	}

	result, err := h.service.AddMoney(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.log, err, "add money")
		return
	}

	utils.ResponseSuccess(w, "Money added to wallet", result)
}

// Deduct handles POST /api/wallets/deduct
func (h *WalletHandler) Deduct(w http.ResponseWriter, r *http.Request) {
	var req request.DeductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		handleServiceError(w, h.log, err, "deduct")
		return
	}

	result, err := h.service.Deduct(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.log, err, "deduct")
		return
	}

	utils.ResponseSuccess(w, "Amount deducted from wallet", result)
}

// Credit handles POST /api/wallets/credit
func (h *WalletHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req request.WalletAmountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		handleServiceError(w, h.log, err, "credit")
		return
	}

	result, err := h.service.Credit(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.log, err, "credit")
		return
	}

	utils.ResponseSuccess(w, "Wallet credited", result)
}

// Refund handles POST /api/wallets/refund
func (h *WalletHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req request.RefundRequest
	if !decodeBody(w, r, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		handleServiceError(w, h.log, err, "refund")
		return
	}

	result, err := h.service.Refund(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.log, err, "refund")
		return
	}

	utils.ResponseSuccess(w, "Booking payment refunded", result)
}

// ListTransactions handles GET /api/wallets/transactions
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseTransactionQuery(r.URL.Query())
	if err != nil {
		handleServiceError(w, h.log, err, "list transactions")
		return
	}

	page, err := h.service.ListTransactions(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list transactions")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}
