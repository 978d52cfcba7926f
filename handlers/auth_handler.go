package handlers

import (
	"net/http"

	"github.com/Dosada05/racket-tournament-system/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: as,
	}
}

// IssueToken выпускает токен доступа по общему ключу.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var input services.IssueTokenInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.authService.IssueToken(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"auth": result}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
