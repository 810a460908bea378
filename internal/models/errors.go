package models

import (
	"net/http"

	"github.com/joshua-takyi/meetspace/internal/apperror"
)

// Domain sentinels. Repos and services return these for expected failure
// modes; handlers translate them to statuses with apperror.StatusOf.
var (
	ErrMissingFields    = apperror.New(http.StatusBadRequest, "missing required fields")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "invalid time range")
	ErrRoomNotFound     = apperror.New(http.StatusNotFound, "room not found")
	ErrBookingNotFound  = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomUnavailable  = apperror.New(http.StatusConflict, "room not available")
	ErrBookingFinalized = apperror.New(http.StatusConflict, "booking already cancelled")
	ErrNotBookingOwner  = apperror.New(http.StatusForbidden, "not allowed to modify this booking")
)
