package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts storage-layer errors into a stable code plus a
// user-facing message, hiding driver internals from the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Erro interno no servidor.",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Postgres constraint violations

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Campos obrigatórios ausentes.",
		}
	}

	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "Nota deve ser um número entre 1 e 5.",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Dados inválidos.",
		}
	}

	// Connection failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Serviço indisponível. Tente novamente em instantes.",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Erro interno no servidor.",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "features") && strings.Contains(errLower, "key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Recurso de acessibilidade já cadastrado.",
		}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Email já cadastrado.",
		}
	}
	if strings.Contains(errLower, "favorites") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Local já favoritado.",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Registro já existente.",
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "place_id") {
		return ErrorInfo{
			Code:    PlaceNotFound,
			Message: "Local não encontrado.",
		}
	}
	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "owner_id") {
		return ErrorInfo{
			Code:    UserNotFound,
			Message: "Usuário não encontrado.",
		}
	}
	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Registro referenciado não encontrado.",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "place") {
		return "Local não encontrado."
	}
	if strings.Contains(contextLower, "user") {
		return "Usuário não encontrado."
	}
	if strings.Contains(contextLower, "review") {
		return "Avaliação não encontrada."
	}
	if strings.Contains(contextLower, "feature") {
		return "Recurso de acessibilidade não encontrado."
	}
	return "Registro não encontrado."
}
