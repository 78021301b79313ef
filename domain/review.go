package domain

import (
	"errors"
	"strings"
)

// ReviewDateLayout is the calendar-day format of Review.Date.
const ReviewDateLayout = "2006-01-02"

var (
	ErrNameRequired     = errors.New("name required")
	ErrRatingRequired   = errors.New("rating required")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

type Review struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurantId"`
	UserName     string `json:"userName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
}

// ReviewInput is the body of a review submission.
type ReviewInput struct {
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

func (in ReviewInput) Normalize() ReviewInput {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Comment = strings.TrimSpace(in.Comment)
	return in
}

func (in ReviewInput) Validate() error {
	if strings.TrimSpace(in.UserName) == "" {
		return ErrNameRequired
	}
	if in.Rating == 0 {
		return ErrRatingRequired
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ErrRatingOutOfRange
	}
	return nil
}
