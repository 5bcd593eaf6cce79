// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	KeyInternalError = "error.internal"
	KeyHealthy       = "health.ok"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailNotFound      = "auth.email_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Admins
	KeyAdminNotFound = "admin.not_found"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductUpdated       = "product.updated"
	KeyProductDeleted       = "product.deleted"
	KeyProductFetched       = "product.fetched"
	KeyProductNotFound      = "product.not_found"
	KeyProductFieldsMissing = "product.fields_required"
	KeyProductInvalidPrice  = "product.invalid_price"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationPassword = "validation.password_too_short"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileInvalidType  = "file.invalid_type"
	KeyFileTooLarge     = "file.too_large"
	KeyFileTooMany      = "file.too_many"
	KeyFileUnavailable  = "file.host_unavailable"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"
)
