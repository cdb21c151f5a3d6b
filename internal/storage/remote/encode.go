package remote

import (
	"encoding/json"
	"time"

	"stayfinder/internal/adapters/recordstore"
	"stayfinder/internal/domain"
)

// Encoders are the write-side counterpart of the normalizers: they
// emit records in the canonical field shape (first alias). List and
// policy fields are stored JSON-encoded, matching what the store holds.

func jsonList(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func encodeHotel(h domain.Hotel) recordstore.Record {
	pol, _ := json.Marshal(h.Policies)
	return recordstore.Record{
		"Id":                 h.ID,
		"name":               h.Name,
		"starRating":         h.StarRating,
		"description":        h.Description,
		"address":            h.Address,
		"city":               h.City,
		"country":            h.Country,
		"lat":                h.Lat,
		"lon":                h.Lon,
		"photos":             jsonList(h.Photos),
		"amenities":          jsonList(h.Amenities),
		"policies":           string(pol),
		"contactEmail":       h.ContactEmail,
		"contactPhone":       h.ContactPhone,
		"distanceFromCenter": h.DistanceFromCenter,
		"averageRating":      h.AverageRating,
		"reviewCount":        h.ReviewCount,
	}
}

func encodeRoom(r domain.Room) recordstore.Record {
	return recordstore.Record{
		"Id":            r.ID,
		"hotelId":       r.HotelID,
		"name":          r.Name,
		"type":          r.Type,
		"capacity":      r.Capacity,
		"bedConfig":     r.BedConfig,
		"photos":        jsonList(r.Photos),
		"amenities":     jsonList(r.Amenities),
		"pricePerNight": r.PricePerNight,
		"available":     r.Available,
		"maxOccupancy":  r.MaxOccupancy,
	}
}

func encodeBooking(b domain.Booking) recordstore.Record {
	rec := recordstore.Record{
		"confirmationNumber": b.ConfirmationNumber,
		"userId":             b.UserID,
		"hotelId":            b.HotelID,
		"checkInDate":        b.CheckIn.Format(time.RFC3339),
		"checkOutDate":       b.CheckOut.Format(time.RFC3339),
		"guestCount":         b.GuestCount,
		"guestName":          b.GuestName,
		"guestEmail":         b.GuestEmail,
		"guestPhone":         b.GuestPhone,
		"specialRequests":    b.SpecialRequests,
		"promoCode":          b.PromoCode,
		"subtotal":           b.Subtotal,
		"taxes":              b.Taxes,
		"discount":           b.Discount,
		"totalAmount":        b.Total,
		"paymentMethod":      b.PaymentMethod,
		"paymentStatus":      string(b.PaymentStatus),
		"bookingStatus":      string(b.Status),
		"cancellationReason": b.CancellationReason,
	}
	if b.ID != 0 {
		rec["Id"] = b.ID
	}
	if b.RoomID != nil {
		rec["roomId"] = *b.RoomID
	}
	if b.CancelledAt != nil {
		rec["cancelledAt"] = b.CancelledAt.Format(time.RFC3339)
	}
	if !b.CreatedAt.IsZero() {
		rec["createdAt"] = b.CreatedAt.Format(time.RFC3339)
	}
	return rec
}

func encodeReview(r domain.Review) recordstore.Record {
	rec := recordstore.Record{
		"hotelId":           r.HotelID,
		"userId":            r.UserID,
		"cleanlinessRating": r.CleanlinessRating,
		"comfortRating":     r.ComfortRating,
		"locationRating":    r.LocationRating,
		"valueRating":       r.ValueRating,
		"overallRating":     r.OverallRating,
		"reviewText":        r.Text,
		"travelerType":      r.TravelerType,
		"photos":            jsonList(r.Photos),
		"helpfulVotes":      r.HelpfulVotes,
	}
	if r.ID != 0 {
		rec["Id"] = r.ID
	}
	if r.BookingID != nil {
		rec["bookingId"] = *r.BookingID
	}
	if !r.CreatedAt.IsZero() {
		rec["createdAt"] = r.CreatedAt.Format(time.RFC3339)
	}
	return rec
}
