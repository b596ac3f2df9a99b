package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/j-prt/rating-app-backend/internal/common"
	"github.com/j-prt/rating-app-backend/internal/server/models"
)

func ptrF(v float64) *float64 { return &v }

func TestCreateRating_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRatingsRepo{}}
	s := NewRatingService(db, rm)

	r, err := s.CreateRating(context.Background(), 7, &models.Rating{ItemID: 3, Value: 5})
	if err != nil {
		t.Fatalf("CreateRating error: %v", err)
	}
	if r.ID == 0 || r.UserID != 7 {
		t.Fatalf("unexpected rating: %+v", r)
	}
}

func TestCreateRating_SentinelPassthrough(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	for _, sentinel := range []error{common.ErrDuplicateRating, common.ErrorNotFound} {
		rm := &fakeRepoManager{r: &fakeRatingsRepo{createErr: sentinel}}
		s := NewRatingService(db, rm)

		_, err := s.CreateRating(context.Background(), 7, &models.Rating{ItemID: 3, Value: 5})
		if !errors.Is(err, sentinel) {
			t.Fatalf("want %v, got %v", sentinel, err)
		}
	}
}

func TestSubmitItemAndRating_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{i: &fakeItemsRepo{}, r: &fakeRatingsRepo{}}
	s := NewRatingService(db, rm)

	item, rating, err := s.SubmitItemAndRating(context.Background(), 7,
		&models.Item{Category: "restaurant", Title: "Noodle Bar"},
		&models.Rating{Value: 4})
	if err != nil {
		t.Fatalf("SubmitItemAndRating error: %v", err)
	}
	if item.UserID != 7 || rating.UserID != 7 {
		t.Fatalf("ownership not set: item=%+v rating=%+v", item, rating)
	}
	if rating.ItemID != item.ID {
		t.Fatalf("rating not linked to new item: item=%d rating.ItemID=%d", item.ID, rating.ItemID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSubmitItemAndRating_IncompleteLocation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{i: &fakeItemsRepo{}, r: &fakeRatingsRepo{}}
	s := NewRatingService(db, rm)

	// latitude without longitude never reaches the database
	_, _, err := s.SubmitItemAndRating(context.Background(), 7,
		&models.Item{Category: "park", Title: "Riverside", Latitude: ptrF(52.1)},
		&models.Rating{Value: 3})
	if !errors.Is(err, common.ErrIncompleteLocation) {
		t.Fatalf("want ErrIncompleteLocation, got %v", err)
	}
}

func TestSubmitItemAndRating_RollbackOnRatingError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{i: &fakeItemsRepo{}, r: &fakeRatingsRepo{createErr: errBoom{}}}
	s := NewRatingService(db, rm)

	_, _, err := s.SubmitItemAndRating(context.Background(), 7,
		&models.Item{Category: "cafe", Title: "Corner"},
		&models.Rating{Value: 2})
	if err == nil || !regexp.MustCompile(`error submitting item with rating: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestListForUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRatingsRepo{listByUserOut: []*models.RatingWithTitle{
		{Rating: models.Rating{ID: 1, UserID: 7}, ItemTitle: "Noodle Bar"},
	}}}
	s := NewRatingService(db, rm)

	result, err := s.ListForUser(context.Background(), 7)
	if err != nil || len(result) != 1 || result[0].ItemTitle != "Noodle Bar" {
		t.Fatalf("ListForUser: got (%v, %v)", result, err)
	}

	rmErr := &fakeRepoManager{r: &fakeRatingsRepo{listByUserErr: errBoom{}}}
	sErr := NewRatingService(db, rmErr)
	if _, err := sErr.ListForUser(context.Background(), 7); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDeleteRating_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	// not the author → forbidden
	rm := &fakeRepoManager{r: &fakeRatingsRepo{getOut: &models.Rating{ID: 5, UserID: 8}}}
	s := NewRatingService(db, rm)
	if err := s.DeleteRating(context.Background(), 7, 5); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	// missing rating
	rmNF := &fakeRepoManager{r: &fakeRatingsRepo{getErr: common.ErrorNotFound}}
	sNF := NewRatingService(db, rmNF)
	if err := sNF.DeleteRating(context.Background(), 7, 5); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}

	// author deletes own rating
	rmOK := &fakeRepoManager{r: &fakeRatingsRepo{getOut: &models.Rating{ID: 5, UserID: 7}}}
	sOK := NewRatingService(db, rmOK)
	if err := sOK.DeleteRating(context.Background(), 7, 5); err != nil {
		t.Fatalf("DeleteRating error: %v", err)
	}
}

func TestDeleteItem_NotOwner(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		i: &fakeItemsRepo{getOut: &models.Item{ID: 3, UserID: 8}},
		r: &fakeRatingsRepo{},
	}
	s := NewRatingService(db, rm)

	if err := s.DeleteItem(context.Background(), 7, 3); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestDeleteItem_SharedByOthers(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	cases := []struct {
		name    string
		ratings []*models.Rating
	}{
		{"several ratings", []*models.Rating{{ID: 1, UserID: 7}, {ID: 2, UserID: 8}}},
		{"single foreign rating", []*models.Rating{{ID: 2, UserID: 8}}},
	}

	for _, tc := range cases {
		mock.ExpectBegin()
		mock.ExpectRollback()

		rm := &fakeRepoManager{
			i: &fakeItemsRepo{getOut: &models.Item{ID: 3, UserID: 7}},
			r: &fakeRatingsRepo{listByItemOut: tc.ratings},
		}
		s := NewRatingService(db, rm)

		if err := s.DeleteItem(context.Background(), 7, 3); !errors.Is(err, common.ErrItemShared) {
			t.Fatalf("%s: want ErrItemShared, got %v", tc.name, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDeleteItem_CascadesOwnLoneRating(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	items := &fakeItemsRepo{getOut: &models.Item{ID: 3, UserID: 7}}
	ratings := &fakeRatingsRepo{listByItemOut: []*models.Rating{{ID: 1, UserID: 7, ItemID: 3}}}
	rm := &fakeRepoManager{i: items, r: ratings}
	s := NewRatingService(db, rm)

	if err := s.DeleteItem(context.Background(), 7, 3); err != nil {
		t.Fatalf("DeleteItem error: %v", err)
	}
	if len(ratings.deletedByItem) != 1 || ratings.deletedByItem[0] != 3 {
		t.Fatalf("own rating not cascaded: %v", ratings.deletedByItem)
	}
	if len(items.deleted) != 1 || items.deleted[0] != 3 {
		t.Fatalf("item not deleted: %v", items.deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDeleteItem_NoRatings(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	items := &fakeItemsRepo{getOut: &models.Item{ID: 3, UserID: 7}}
	ratings := &fakeRatingsRepo{}
	rm := &fakeRepoManager{i: items, r: ratings}
	s := NewRatingService(db, rm)

	if err := s.DeleteItem(context.Background(), 7, 3); err != nil {
		t.Fatalf("DeleteItem error: %v", err)
	}
	if len(ratings.deletedByItem) != 0 {
		t.Fatalf("unexpected rating cascade: %v", ratings.deletedByItem)
	}
}

func TestDeleteItem_RatingCommittedDuringDelete(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	// a rating slipped in after the emptiness check; the row delete reports
	// the item as shared and the caller sees the same sentinel
	rm := &fakeRepoManager{
		i: &fakeItemsRepo{getOut: &models.Item{ID: 3, UserID: 7}, delErr: common.ErrItemShared},
		r: &fakeRatingsRepo{},
	}
	s := NewRatingService(db, rm)

	if err := s.DeleteItem(context.Background(), 7, 3); !errors.Is(err, common.ErrItemShared) {
		t.Fatalf("want ErrItemShared, got %v", err)
	}
}

func TestDeleteItem_Missing(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		i: &fakeItemsRepo{getErr: common.ErrorNotFound},
		r: &fakeRatingsRepo{},
	}
	s := NewRatingService(db, rm)

	if err := s.DeleteItem(context.Background(), 7, 99); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
