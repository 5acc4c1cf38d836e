package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// Statement generation returns this when a statement for the exact period is present.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the resource does not belong to the acting user.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
