package domain

// Policy carries a hotel's house rules. Defaults come from the
// normalizer when the stored record is missing or garbled.
type Policy struct {
	CheckIn      string `json:"checkIn"`
	CheckOut     string `json:"checkOut"`
	Cancellation string `json:"cancellation"`
}

type Hotel struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	StarRating         int      `json:"starRating"`
	Description        string   `json:"description"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	Country            string   `json:"country"`
	Lat                float64  `json:"lat"`
	Lon                float64  `json:"lon"`
	Photos             []string `json:"photos"`
	Amenities          []string `json:"amenities"`
	Policies           Policy   `json:"policies"`
	ContactEmail       string   `json:"contactEmail"`
	ContactPhone       string   `json:"contactPhone"`
	DistanceFromCenter float64  `json:"distanceFromCenter"`
	AverageRating      float64  `json:"averageRating"`
	ReviewCount        int      `json:"reviewCount"`
}

// EstimatedPrice is the placeholder nightly price used for hotel-list
// filtering and sorting before room-level pricing is known.
func (h Hotel) EstimatedPrice() float64 {
	return float64(h.StarRating) * 100
}

type Room struct {
	ID            int64    `json:"id"`
	HotelID       int64    `json:"hotelId"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Capacity      int      `json:"capacity"`
	BedConfig     string   `json:"bedConfig"`
	Photos        []string `json:"photos"`
	Amenities     []string `json:"amenities"`
	PricePerNight float64  `json:"pricePerNight"`
	Available     bool     `json:"available"`
	MaxOccupancy  int      `json:"maxOccupancy"`
}
