package rest

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/j-prt/rating-app-backend/internal/server/models"
)

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email     string  `json:"email" binding:"required"`
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// ratingSubmission is the superset body of POST /ratings. A bare rating
// references an existing item via item_id; the combined variant carries the
// new item's fields (title and category present) and no item_id.
type ratingSubmission struct {
	ItemID      *int64  `json:"item_id"`
	Rating      *int    `json:"rating" binding:"required"`
	Description *string `json:"description"`

	Title     *string  `json:"title"`
	Category  *string  `json:"category"`
	Image     *string  `json:"image"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *ratingSubmission) isCombined() bool {
	return r.Title != nil || r.Category != nil
}

type ratingResponse struct {
	ID          int64   `json:"id"`
	ItemID      int64   `json:"item_id"`
	UserID      int64   `json:"user_id"`
	Rating      int     `json:"rating"`
	Description *string `json:"description"`
	ItemTitle   string  `json:"item_title,omitempty"`
}

func toRatingResponse(r *models.Rating) ratingResponse {
	return ratingResponse{
		ID:          r.ID,
		ItemID:      r.ItemID,
		UserID:      r.UserID,
		Rating:      r.Value,
		Description: r.Description,
	}
}

type itemResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Image       *string    `json:"image"`
	Address     *string    `json:"address"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	TimeCreated time.Time  `json:"time_created"`
	TimeUpdated *time.Time `json:"time_updated"`
}

func toItemResponse(i *models.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		UserID:      i.UserID,
		Category:    i.Category,
		Title:       i.Title,
		Image:       i.Image,
		Address:     i.Address,
		Latitude:    i.Latitude,
		Longitude:   i.Longitude,
		TimeCreated: i.TimeCreated,
		TimeUpdated: i.TimeUpdated,
	}
}

type imageUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// detail writes the error body shape used across the API.
func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

func abortDetail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}
