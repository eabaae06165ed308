package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope for every JSON API reply
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, response Response) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(response)
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, Response{
		Status: "error",
		Error:  message,
	})
}

// WriteSuccess writes a success response
func WriteSuccess(w http.ResponseWriter, message string, data any) error {
	return WriteJSON(w, http.StatusOK, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter) error {
	return WriteError(w, http.StatusUnauthorized, "Unauthorized")
}

// WriteBadGateway reports a failure of an upstream site or API
func WriteBadGateway(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadGateway, message)
}
