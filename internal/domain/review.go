package domain

import "time"

type Review struct {
	ID                int64     `json:"id"`
	HotelID           int64     `json:"hotelId"`
	BookingID         *int64    `json:"bookingId"`
	UserID            string    `json:"userId"`
	CleanlinessRating int       `json:"cleanlinessRating"`
	ComfortRating     int       `json:"comfortRating"`
	LocationRating    int       `json:"locationRating"`
	ValueRating       int       `json:"valueRating"`
	OverallRating     int       `json:"overallRating"`
	Text              string    `json:"text"`
	TravelerType      string    `json:"travelerType"`
	Photos            []string  `json:"photos"`
	HelpfulVotes      int       `json:"helpfulVotes"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ReviewStats aggregates one hotel's reviews. With zero reviews every
// field is zero; no average is ever computed over an empty set.
type ReviewStats struct {
	TotalReviews    int              `json:"totalReviews"`
	AverageRating   float64          `json:"averageRating"` // one decimal
	RatingBreakdown map[int]int      `json:"ratingBreakdown"`
	CategoryAvg     CategoryAverages `json:"categoryAverages"`
}

type CategoryAverages struct {
	Cleanliness float64 `json:"cleanliness"`
	Comfort     float64 `json:"comfort"`
	Location    float64 `json:"location"`
	Value       float64 `json:"value"`
}
