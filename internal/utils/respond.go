package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON serializa o payload e escreve a resposta com o status informado.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError escreve um corpo JSON {"error": mensagem}.
func RespondError(w http.ResponseWriter, status int, mensagem string) {
	RespondJSON(w, status, map[string]string{"error": mensagem})
}
