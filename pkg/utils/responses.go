package utils

import (
	"encoding/json"
	"net/http"

	"parking-marketplace/pkg/apperror"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	writeResponse(w, code, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func writeResponse(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	writeResponse(w, http.StatusBadRequest, Response{
		Message: message,
		Code:    "validation_failed",
		Errors:  errors,
	})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusNotFound, Response{Message: message, Code: "not_found"})
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusTooManyRequests, Response{Message: message, Code: "rate_limited"})
}

// ResponseError writes a domain error with the status derived from its kind.
func ResponseError(w http.ResponseWriter, err *apperror.Error) {
	response := Response{
		Message: err.Message(),
		Code:    err.Code(),
	}
	if fields := err.Fields(); len(fields) > 0 {
		response.Errors = fields
	}
	writeResponse(w, apperror.HTTPStatus(err.Kind()), response)
}
