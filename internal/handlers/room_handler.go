package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/meetspace/internal/models"
	"github.com/joshua-takyi/meetspace/internal/services"
)

func ListRooms(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := rs.ListRooms(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rooms, ""))
	}
}

func GetRoom(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cleanParam(c, "id")
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("room ID is required"))
			return
		}

		room, err := rs.GetRoom(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(room, ""))
	}
}

// RoomAvailability lists the free windows of a room for the requested day.
func RoomAvailability(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cleanParam(c, "id")
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("room ID is required"))
			return
		}
		date := strings.TrimSpace(c.Query("date"))
		if date == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("date query parameter is required"))
			return
		}

		windows, err := rs.Availability(c.Request.Context(), id, date)
		if err != nil {
			respondError(c, err)
			return
		}

		slots := make([]gin.H, 0, len(windows))
		for _, w := range windows {
			slots = append(slots, gin.H{
				"start_time": models.FormatClock(w.Start),
				"end_time":   models.FormatClock(w.End),
			})
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"room_id":      id,
			"date":         date,
			"free_windows": slots,
		}, ""))
	}
}
