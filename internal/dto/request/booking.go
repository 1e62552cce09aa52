package request

import (
	"strings"

	"parking-marketplace/internal/data/entity"
	"parking-marketplace/pkg/utils"
)

type UploadScreenshotRequest struct {
	ScreenshotURL string  `json:"screenshotUrl" validate:"required,url,max=2048"`
	TransactionID *string `json:"transactionId,omitempty" validate:"omitempty,max=255"`
}

type UploadScreenshotInput struct {
	ScreenshotURL string
	TransactionID *string
}

func (r UploadScreenshotRequest) ToInput() (UploadScreenshotInput, error) {
	if err := utils.Validate(r); err != nil {
		return UploadScreenshotInput{}, err
	}
	input := UploadScreenshotInput{ScreenshotURL: strings.TrimSpace(r.ScreenshotURL)}
	if r.TransactionID != nil {
		if txID := strings.TrimSpace(*r.TransactionID); txID != "" {
			input.TransactionID = &txID
		}
	}
	return input, nil
}

type RejectPaymentRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"required"`
	Refund          bool   `json:"refund,omitempty"`
}

type RejectPaymentInput struct {
	Reason entity.Reason
	Refund bool
}

func (r RejectPaymentRequest) ToInput() (RejectPaymentInput, error) {
	if err := utils.Validate(r); err != nil {
		return RejectPaymentInput{}, err
	}
	reason, err := entity.NewReason("rejectionReason", r.RejectionReason)
	if err != nil {
		return RejectPaymentInput{}, err
	}
	return RejectPaymentInput{Reason: reason, Refund: r.Refund}, nil
}

type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason" validate:"required"`
}

func (r CancelBookingRequest) ToReason() (entity.Reason, error) {
	if err := utils.Validate(r); err != nil {
		return entity.Reason{}, err
	}
	return entity.NewReason("cancellationReason", r.CancellationReason)
}
