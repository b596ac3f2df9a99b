package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/j-prt/rating-app-backend/internal/common"
	"github.com/j-prt/rating-app-backend/internal/server/models"
)

// createRating handles both variants of POST /ratings: a bare rating of an
// existing item, or a combined item+rating submission. The body is decoded
// once; the presence of title/category selects the combined variant.
func (s *RestServer) createRating(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	var body ratingSubmission
	if err := c.ShouldBindJSON(&body); err != nil {
		detail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.isCombined() {
		if body.Title == nil || *body.Title == "" || body.Category == nil || *body.Category == "" {
			detail(c, http.StatusBadRequest, "Both title and category are required for a new item")
			return
		}

		item := &models.Item{
			Category:  *body.Category,
			Title:     *body.Title,
			Image:     body.Image,
			Address:   body.Address,
			Latitude:  body.Latitude,
			Longitude: body.Longitude,
		}
		rating := &models.Rating{Value: *body.Rating, Description: body.Description}

		_, rating, err := s.ratings.SubmitItemAndRating(ctx, user.ID, item, rating)
		if err != nil {
			if errors.Is(err, common.ErrIncompleteLocation) {
				detail(c, http.StatusBadRequest, "Latitude and longitude must be provided together")
				return
			}
			s.logger.Error(ctx, err.Error())
			detail(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.JSON(http.StatusCreated, toRatingResponse(rating))
		return
	}

	if body.ItemID == nil {
		detail(c, http.StatusBadRequest, "item_id is required when rating an existing item")
		return
	}

	rating, err := s.ratings.CreateRating(ctx, user.ID, &models.Rating{
		ItemID:      *body.ItemID,
		Value:       *body.Rating,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateRating):
			detail(c, http.StatusBadRequest, "Item already rated by this user")
		case errors.Is(err, common.ErrorNotFound):
			detail(c, http.StatusNotFound, "Item not found")
		default:
			s.logger.Error(ctx, err.Error())
			detail(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, toRatingResponse(rating))
}

func (s *RestServer) listRatings(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	result, err := s.ratings.ListForUser(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]ratingResponse, 0, len(result))
	for _, r := range result {
		resp := toRatingResponse(&r.Rating)
		resp.ItemTitle = r.ItemTitle
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (s *RestServer) deleteRating(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid rating id")
		return
	}

	if err := s.ratings.DeleteRating(ctx, user.ID, id); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			detail(c, http.StatusNotFound, "Rating not found")
		case errors.Is(err, common.ErrForbidden):
			detail(c, http.StatusForbidden, "Not the author of this rating")
		default:
			s.logger.Error(ctx, err.Error())
			detail(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *RestServer) getItem(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid item id")
		return
	}

	item, err := s.items.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "Item not found")
			return
		}
		s.logger.Error(ctx, err.Error())
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (s *RestServer) deleteItem(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := s.ratings.DeleteItem(ctx, user.ID, id); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			detail(c, http.StatusNotFound, "Item not found")
		case errors.Is(err, common.ErrForbidden):
			detail(c, http.StatusForbidden, "Not the owner of this item")
		case errors.Is(err, common.ErrItemShared):
			detail(c, http.StatusBadRequest, "Item has ratings from other users")
		default:
			s.logger.Error(ctx, err.Error())
			detail(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
