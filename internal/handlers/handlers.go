package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func sendErrorOrLog(w http.ResponseWriter, logger *slog.Logger, status int, e error) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(wrapError(e)); err != nil {
		logger.Error(
			"failed to send error message",
			slog.Any("sent error", e),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
