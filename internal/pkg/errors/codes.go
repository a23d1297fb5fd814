package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Unknown place category",
		http.StatusBadRequest,
	)

	ErrInvalidProvider = New(
		"INVALID_PROVIDER",
		"Unknown or unconfigured places provider",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid session token",
		http.StatusUnauthorized,
	)

	ErrBrandImageNotFound = New(
		"BRAND_IMAGE_NOT_FOUND",
		"Brand image not found",
		http.StatusNotFound,
	)

	ErrBrandImageUnavailable = New(
		"BRAND_IMAGE_UNAVAILABLE",
		"Brand image lookup failed",
		http.StatusBadGateway,
	)

	ErrPhotoUnavailable = New(
		"PHOTO_UNAVAILABLE",
		"Place photo could not be fetched",
		http.StatusBadGateway,
	)

	ErrLocationsUnavailable = New(
		"LOCATIONS_UNAVAILABLE",
		"Failed to fetch locations",
		http.StatusServiceUnavailable,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
