package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/meetspace/internal/apperror"
	"github.com/joshua-takyi/meetspace/internal/helpers"
	"github.com/joshua-takyi/meetspace/internal/models"
	"github.com/joshua-takyi/meetspace/internal/services"
)

type CreateBookingRequest struct {
	RoomID    string `json:"room_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Purpose   string `json:"purpose"`
}

func currentUser(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	claims, ok := userClaims.(*helpers.EnhancedClaims)
	return claims, ok
}

// respondError maps an error to its status and envelope. Internal faults are
// attached to the context so the error middleware logs them with the request.
func respondError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, models.ErrorResponse(apperror.MessageOf(err)))
}

func cleanParam(c *gin.Context, name string) string {
	v := strings.TrimSpace(c.Param(name))
	return strings.Trim(v, "\"'")
}

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				respondError(c, models.ErrMissingFields)
				return
			}
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.CreateBooking(c.Request.Context(), services.CreateBookingInput{
			RoomID:      req.RoomID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Purpose:     req.Purpose,
			RequestedBy: claims.UserID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "booking created successfully"))
	}
}

func ListBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		limit := c.DefaultQuery("limit", "20")
		offset := c.DefaultQuery("offset", "0")
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}
		offsetInt, err := strconv.Atoi(offset)
		if err != nil || offsetInt < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
			return
		}

		filter := models.BookingFilter{
			RoomID: strings.TrimSpace(c.Query("room_id")),
			Date:   strings.TrimSpace(c.Query("date")),
			Status: models.BookingStatus(strings.TrimSpace(c.Query("status"))),
			Limit:  int64(limitInt),
			Offset: int64(offsetInt),
		}
		if c.Query("mine") == "true" {
			filter.RequestedBy = claims.UserID
		}

		bookings, total, err := bs.ListBookings(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(bookings, page, limitInt, total))
	}
}

func GetBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cleanParam(c, "id")
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("booking ID is required"))
			return
		}

		booking, err := bs.GetBooking(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, ""))
	}
}

func ConfirmBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		id := cleanParam(c, "id")
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("booking ID is required"))
			return
		}

		booking, err := bs.ConfirmBooking(c.Request.Context(), id, claims.UserID, claims.IsAdmin())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "booking confirmed"))
	}
}

func CancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		id := cleanParam(c, "id")
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("booking ID is required"))
			return
		}

		booking, err := bs.CancelBooking(c.Request.Context(), id, claims.UserID, claims.IsAdmin())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "booking cancelled successfully"))
	}
}
