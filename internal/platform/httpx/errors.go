package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Services wrap these with a
// business-language message; handlers translate them into HTTP responses.
var (
	ErrNotFound     = errors.New("registro não encontrado")
	ErrInvalidState = errors.New("operação não permitida no estado atual")
	ErrConflict     = errors.New("registro duplicado")
	ErrValidation   = errors.New("dados inválidos")
)

// RespondError maps domain errors to RFC7807 responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Não Encontrado", err.Error())
	case errors.Is(err, ErrInvalidState):
		Problem(w, http.StatusBadRequest, "Estado Inválido", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validação", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflito", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Erro Interno", "")
	}
}
