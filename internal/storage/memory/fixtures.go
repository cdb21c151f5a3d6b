package memory

import (
	"context"
	"time"

	"stayfinder/internal/domain"
)

// Demo dataset used by the memory fallback and by cmd/seeder when
// pushing an initial catalog into the record store.

func ptrI64(v int64) *int64 { return &v }

var SampleHotels = []domain.Hotel{
	{
		ID: 1, Name: "Grand Palais Hotel", StarRating: 5,
		Description: "Belle-epoque landmark two blocks from the Champs-Elysees.",
		Address:     "12 Avenue des Ternes", City: "Paris", Country: "France",
		Lat: 48.8566, Lon: 2.3522,
		Photos:    []string{"https://images.example.com/hotels/1/1.jpg", "https://images.example.com/hotels/1/2.jpg"},
		Amenities: []string{"WiFi", "Pool", "Spa", "Restaurant", "Bar", "Gym"},
		Policies: domain.Policy{
			CheckIn: "3:00 PM", CheckOut: "11:00 AM",
			Cancellation: "Free cancellation up to 48 hours before check-in",
		},
		ContactEmail: "stay@grandpalais.example", ContactPhone: "+33 1 42 00 00 01",
		DistanceFromCenter: 1.2, AverageRating: 4.7, ReviewCount: 3,
	},
	{
		ID: 2, Name: "Sakura Garden Inn", StarRating: 4,
		Description: "Quiet ryokan-style rooms near Shinjuku Gyoen.",
		Address:     "2-5-1 Sendagaya", City: "Tokyo", Country: "Japan",
		Lat: 35.6762, Lon: 139.6503,
		Photos:    []string{"https://images.example.com/hotels/2/1.jpg"},
		Amenities: []string{"WiFi", "Restaurant", "Onsen", "Garden"},
		Policies: domain.Policy{
			CheckIn: "4:00 PM", CheckOut: "10:00 AM",
			Cancellation: "Free cancellation up to 24 hours before check-in",
		},
		ContactEmail: "front@sakuragarden.example", ContactPhone: "+81 3 0000 0002",
		DistanceFromCenter: 3.8, AverageRating: 4.4, ReviewCount: 2,
	},
	{
		ID: 3, Name: "Harborview Suites", StarRating: 3,
		Description: "Practical suites with skyline views of the East River.",
		Address:     "88 Water Street", City: "New York", Country: "United States",
		Lat: 40.7128, Lon: -74.0060,
		Photos:    []string{"https://images.example.com/hotels/3/1.jpg"},
		Amenities: []string{"WiFi", "Gym", "Parking"},
		Policies: domain.Policy{
			CheckIn: "3:00 PM", CheckOut: "11:00 AM",
			Cancellation: "Free cancellation",
		},
		ContactEmail: "hello@harborview.example", ContactPhone: "+1 212 000 0003",
		DistanceFromCenter: 0.9, AverageRating: 4.1, ReviewCount: 1,
	},
}

var SampleRooms = []domain.Room{
	{ID: 1, HotelID: 1, Name: "Deluxe King", Type: "deluxe", Capacity: 2, BedConfig: "1 king bed",
		Photos: []string{"https://images.example.com/rooms/1/1.jpg"}, Amenities: []string{"WiFi", "Minibar", "City view"},
		PricePerNight: 420, Available: true, MaxOccupancy: 2},
	{ID: 2, HotelID: 1, Name: "Palais Suite", Type: "suite", Capacity: 4, BedConfig: "1 king bed + sofa bed",
		Photos: []string{"https://images.example.com/rooms/2/1.jpg"}, Amenities: []string{"WiFi", "Minibar", "Balcony"},
		PricePerNight: 780, Available: true, MaxOccupancy: 4},
	{ID: 3, HotelID: 2, Name: "Tatami Twin", Type: "standard", Capacity: 2, BedConfig: "2 futon beds",
		Photos: []string{}, Amenities: []string{"WiFi", "Tea set"},
		PricePerNight: 180, Available: true, MaxOccupancy: 3},
	{ID: 4, HotelID: 2, Name: "Garden Suite", Type: "suite", Capacity: 3, BedConfig: "1 queen bed + futon",
		Photos: []string{}, Amenities: []string{"WiFi", "Garden view"},
		PricePerNight: 310, Available: false, MaxOccupancy: 3},
	{ID: 5, HotelID: 3, Name: "Skyline Studio", Type: "studio", Capacity: 2, BedConfig: "1 queen bed",
		Photos: []string{}, Amenities: []string{"WiFi", "Kitchenette"},
		PricePerNight: 150, Available: true, MaxOccupancy: 2},
}

var SampleReviews = []domain.Review{
	{ID: 1, HotelID: 1, BookingID: ptrI64(1), UserID: "user1",
		CleanlinessRating: 5, ComfortRating: 5, LocationRating: 5, ValueRating: 4, OverallRating: 5,
		Text: "Impeccable service and a perfect location.", TravelerType: "Leisure",
		Photos: []string{}, HelpfulVotes: 12,
		CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)},
	{ID: 2, HotelID: 1, UserID: "user2",
		CleanlinessRating: 4, ComfortRating: 5, LocationRating: 5, ValueRating: 3, OverallRating: 5,
		Text: "Gorgeous rooms, breakfast on the pricey side.", TravelerType: "Business",
		Photos: []string{}, HelpfulVotes: 4,
		CreatedAt: time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)},
	{ID: 3, HotelID: 1, UserID: "user3",
		CleanlinessRating: 4, ComfortRating: 4, LocationRating: 5, ValueRating: 4, OverallRating: 4,
		Text: "Would stay again.", TravelerType: "Family",
		Photos: []string{}, HelpfulVotes: 1,
		CreatedAt: time.Date(2025, 5, 20, 18, 15, 0, 0, time.UTC)},
	{ID: 4, HotelID: 2, UserID: "user1",
		CleanlinessRating: 5, ComfortRating: 4, LocationRating: 4, ValueRating: 5, OverallRating: 4,
		Text: "The onsen alone is worth the trip.", TravelerType: "Leisure",
		Photos: []string{}, HelpfulVotes: 7,
		CreatedAt: time.Date(2025, 2, 11, 8, 0, 0, 0, time.UTC)},
	{ID: 5, HotelID: 2, UserID: "user4",
		CleanlinessRating: 5, ComfortRating: 5, LocationRating: 4, ValueRating: 4, OverallRating: 5,
		Text: "Quiet, spotless, wonderful staff.", TravelerType: "Couple",
		Photos: []string{}, HelpfulVotes: 2,
		CreatedAt: time.Date(2025, 6, 1, 12, 45, 0, 0, time.UTC)},
	{ID: 6, HotelID: 3, UserID: "user2",
		CleanlinessRating: 4, ComfortRating: 3, LocationRating: 5, ValueRating: 4, OverallRating: 4,
		Text: "Great value for lower Manhattan.", TravelerType: "Business",
		Photos: []string{}, HelpfulVotes: 0,
		CreatedAt: time.Date(2025, 1, 25, 16, 20, 0, 0, time.UTC)},
}

// NewWithSampleData returns a repo preloaded with the demo catalog.
func NewWithSampleData() *Repo {
	r := New()
	ctx := context.Background()
	for _, h := range SampleHotels {
		_ = r.UpsertHotel(ctx, h)
	}
	for _, rm := range SampleRooms {
		_ = r.UpsertRoom(ctx, rm)
	}
	for _, rv := range SampleReviews {
		rv := rv
		r.mu.Lock()
		r.reviews[rv.ID] = rv
		if rv.ID >= r.nextReviewID {
			r.nextReviewID = rv.ID + 1
		}
		r.mu.Unlock()
	}
	return r
}
