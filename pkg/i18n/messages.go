package i18n

import "golang.org/x/text/language"

// Message keys raised outside the domain error constructors.
const (
	KeyMessageNotFound    = "app.error.message.not.found"
	KeyParameterMissing   = "parameter.missing"
	KeyParameterInvalid   = "parameter.invalid"
	KeyMethodNotSupported = "method.not.supported"
	KeyRouteNotFound      = "route.not.found"
	KeyBodyInvalid        = "request.body.invalid"
	KeyFieldRequired      = "validation.required"
	KeyFieldNotBlank      = "validation.notblank"
	KeyFieldMax           = "validation.max"
	KeyFieldInvalid       = "validation.invalid"
	KeyRateLimited        = "rate.limited"
	KeyUnauthorized       = "auth.unauthorized"
	KeyTokenRevoked       = "auth.token.revoked"
	KeyForbidden          = "auth.forbidden"
	KeyFileRequired       = "file.required"
	KeyFileTooLarge       = "file.too.large"
)

// Arguments are referenced positionally so translations may reorder them.
var messages = map[string]map[language.Tag]string{
	"error.database": {
		language.English: "A database error occurred",
		language.Spanish: "Ocurrió un error de base de datos",
	},
	"error.invalid_data": {
		language.English: "Provided data is invalid",
		language.Spanish: "Los datos proporcionados no son válidos",
	},
	"error.resource_conflict": {
		language.English: "Resource conflict occurred",
		language.Spanish: "Ocurrió un conflicto de recursos",
	},
	"error.resource_not_found": {
		language.English: "Resource not found",
		language.Spanish: "Recurso no encontrado",
	},
	"error.service_unavailable": {
		language.English: "Service is currently unavailable",
		language.Spanish: "El servicio no está disponible en este momento",
	},
	"error.unexpected": {
		language.English: "An unexpected error occurred",
		language.Spanish: "Ocurrió un error inesperado",
	},
	"crud.not.found": {
		language.English: "%[1]s with %[2]s '%[3]s' not found",
		language.Spanish: "%[1]s con %[2]s '%[3]s' no encontrado",
	},
	"crud.already.exists": {
		language.English: "%[1]s with %[2]s '%[3]s' already exists",
		language.Spanish: "%[1]s con %[2]s '%[3]s' ya existe",
	},
	KeyMessageNotFound: {
		language.English: "Message not available",
		language.Spanish: "Mensaje no disponible",
	},
	KeyParameterMissing: {
		language.English: "Required parameter '%[1]s' is missing",
		language.Spanish: "Falta el parámetro obligatorio '%[1]s'",
	},
	KeyParameterInvalid: {
		language.English: "Parameter '%[1]s' has an invalid value '%[2]s'",
		language.Spanish: "El parámetro '%[1]s' tiene un valor no válido '%[2]s'",
	},
	KeyMethodNotSupported: {
		language.English: "Request method '%[1]s' is not supported",
		language.Spanish: "El método de solicitud '%[1]s' no está soportado",
	},
	KeyRouteNotFound: {
		language.English: "No endpoint %[1]s %[2]s",
		language.Spanish: "No existe el endpoint %[1]s %[2]s",
	},
	KeyBodyInvalid: {
		language.English: "Malformed request body",
		language.Spanish: "Cuerpo de la solicitud mal formado",
	},
	KeyFieldRequired: {
		language.English: "%[1]s: must not be null",
		language.Spanish: "%[1]s: no debe ser nulo",
	},
	KeyFieldNotBlank: {
		language.English: "%[1]s: must not be blank",
		language.Spanish: "%[1]s: no debe estar en blanco",
	},
	KeyFieldMax: {
		language.English: "%[1]s: size must be between 0 and %[2]s",
		language.Spanish: "%[1]s: el tamaño debe estar entre 0 y %[2]s",
	},
	KeyFieldInvalid: {
		language.English: "%[1]s: invalid value",
		language.Spanish: "%[1]s: valor no válido",
	},
	KeyRateLimited: {
		language.English: "Too many requests, retry later",
		language.Spanish: "Demasiadas solicitudes, intente más tarde",
	},
	KeyUnauthorized: {
		language.English: "A valid bearer token is required",
		language.Spanish: "Se requiere un token de acceso válido",
	},
	KeyTokenRevoked: {
		language.English: "Token has been revoked",
		language.Spanish: "El token ha sido revocado",
	},
	KeyForbidden: {
		language.English: "Permission %[1]s is required",
		language.Spanish: "Se requiere el permiso %[1]s",
	},
	KeyFileRequired: {
		language.English: "An .xlsx file is required in form field '%[1]s'",
		language.Spanish: "Se requiere un archivo .xlsx en el campo '%[1]s'",
	},
	KeyFileTooLarge: {
		language.English: "Upload exceeds the limit of %[1]s bytes",
		language.Spanish: "El archivo supera el límite de %[1]s bytes",
	},
}
