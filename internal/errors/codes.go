package errors

// Error code constants, format CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to localized messages.

const (
	// ==================== Autenticação (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // login necessário
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"

	// ==================== Autorização (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"

	// ==================== Validação (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"

	// ==================== Recursos (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Locais (PLACE_) ====================
	PlaceNotFound          = "PLACE_NOT_FOUND"
	PlaceMissingFields     = "PLACE_MISSING_FIELDS"     // nome, categoria ou descrição ausente
	PlaceIncompleteAddress = "PLACE_INCOMPLETE_ADDRESS" // endereço estruturado incompleto
	PlaceInvalidState      = "PLACE_INVALID_STATE"      // sigla do estado inválida

	// ==================== Avaliações (REVIEW_) ====================
	ReviewInvalidRating = "REVIEW_INVALID_RATING"

	// ==================== Fotos ====================
	// Reason codes for rejected photo payloads. These are part of the wire
	// contract consumed by the submission form and stay lowercase.
	PhotoMissing     = "missing_photo"
	PhotoMissingData = "missing_photo_data"
	PhotoInvalidURL  = "invalid_data_url"
	PhotoBadMime     = "unsupported_mime"
	PhotoEmpty       = "empty_photo"
	PhotoTooLarge    = "photo_too_large"

	// ==================== Usuários (USER_) ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== Erros internos (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR" // falha ao gravar arquivos
)
