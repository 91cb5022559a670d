package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crewhub/user-directory/internal/core/ports"
	"github.com/crewhub/user-directory/pkg/listing"
)

// UserHandler handles the directory listing.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users. Unknown sort fields and directions fall back to
// the defaults (name ascending) rather than erroring, matching the engine's
// closed field set.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        sort       query     string  false  "Sort field: name, email, created_at"
// @Param        direction  query     string  false  "Sort direction: asc, desc"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listUsersResponse
// @Failure      401        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	state := listing.State{
		Field:     listing.ParseField(c.QueryParam("sort")),
		Direction: listing.ParseDirection(c.QueryParam("direction")),
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListUsers(c.Request().Context(), ports.ListUsersInput{
		Sort:  state,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return err
	}

	data := make([]userResponse, 0, len(result.Items))
	for _, u := range result.Items {
		data = append(data, userResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
