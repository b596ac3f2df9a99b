package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/j-prt/rating-app-backend/internal/common"
)

// createImageUpload hands out a presigned PUT URL. The client uploads the
// image bytes directly to object storage and stores the returned key in the
// item's image field.
func (s *RestServer) createImageUpload(c *gin.Context) {
	ctx := c.Request.Context()

	key, url, err := s.images.GetPresignedPutUrl(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, imageUploadResponse{Key: key, UploadURL: url})
}

func (s *RestServer) getItemImage(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid item id")
		return
	}

	url, err := s.images.GetItemImageURL(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "Item image not found")
			return
		}
		s.logger.Error(ctx, err.Error())
		detail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
