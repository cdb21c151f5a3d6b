package remote

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"stayfinder/internal/domain"
)

// Normalizers translate raw store records into domain entities. They
// are total: missing or garbled optional fields fall back to defaults
// and never produce an error. Alias lists absorb the storage layer's
// field-naming drift (camelCase vs snake_case vs suffixed columns).

/********** alias registries **********/

var hotelAliases = map[string][]string{
	"id":          {"Id", "id", "hotel_id"},
	"name":        {"name", "Name", "name_c", "hotel_name"},
	"stars":       {"starRating", "star_rating_c", "stars", "rating.stars"},
	"description": {"description", "description_c"},
	"address":     {"address", "address_c", "address.line", "full_address"},
	"city":        {"city", "city_c", "address.city"},
	"country":     {"country", "country_c", "address.country"},
	"lat":         {"lat", "latitude", "location.lat"},
	"lon":         {"lon", "lng", "longitude", "location.lon", "location.lng"},
	"photos":      {"photos", "photos_c", "images"},
	"amenities":   {"amenities", "amenities_c", "facilities"},
	"policies":    {"policies", "policies_c"},
	"email":       {"contactEmail", "contact_email_c", "email"},
	"phone":       {"contactPhone", "contact_phone_c", "phone"},
	"distance":    {"distanceFromCenter", "distance_from_center_c", "distance_km"},
	"avgRating":   {"averageRating", "average_rating_c"},
	"reviewCount": {"reviewCount", "review_count_c"},
}

var roomAliases = map[string][]string{
	"id":        {"Id", "id", "room_id"},
	"hotelId":   {"hotelId", "hotel_id_c", "hotel_id"},
	"name":      {"name", "name_c", "room_name"},
	"type":      {"type", "type_c", "room_type"},
	"capacity":  {"capacity", "capacity_c"},
	"bedConfig": {"bedConfig", "bed_config_c", "beds"},
	"photos":    {"photos", "photos_c", "images"},
	"amenities": {"amenities", "amenities_c"},
	"price":     {"pricePerNight", "price_per_night_c", "price"},
	"available": {"available", "available_c"},
	"maxOcc":    {"maxOccupancy", "max_occupancy_c"},
}

var bookingAliases = map[string][]string{
	"id":           {"Id", "id", "booking_id"},
	"confirmation": {"confirmationNumber", "confirmation_number_c"},
	"userId":       {"userId", "user_id_c", "user_id"},
	"hotelId":      {"hotelId", "hotel_id_c", "hotel_id"},
	"roomId":       {"roomId", "room_id_c", "room_id"},
	"checkIn":      {"checkInDate", "check_in_date_c", "checkIn"},
	"checkOut":     {"checkOutDate", "check_out_date_c", "checkOut"},
	"guestCount":   {"guestCount", "guest_count_c"},
	"guestName":    {"guestName", "guest_name_c"},
	"guestEmail":   {"guestEmail", "guest_email_c"},
	"guestPhone":   {"guestPhone", "guest_phone_c"},
	"requests":     {"specialRequests", "special_requests_c"},
	"promoCode":    {"promoCode", "promo_code_c"},
	"subtotal":     {"subtotal", "subtotal_c"},
	"taxes":        {"taxes", "taxes_c"},
	"discount":     {"discount", "discount_c"},
	"total":        {"totalAmount", "total_amount_c", "total"},
	"payMethod":    {"paymentMethod", "payment_method_c"},
	"payStatus":    {"paymentStatus", "payment_status_c"},
	"status":       {"bookingStatus", "booking_status_c", "status"},
	"cancelReason": {"cancellationReason", "cancellation_reason_c"},
	"cancelledAt":  {"cancelledAt", "cancelled_at_c"},
	"createdAt":    {"createdAt", "created_at_c", "CreatedOn"},
}

var reviewAliases = map[string][]string{
	"id":           {"Id", "id", "review_id"},
	"hotelId":      {"hotelId", "hotel_id_c", "hotel_id"},
	"bookingId":    {"bookingId", "booking_id_c", "booking_id"},
	"userId":       {"userId", "user_id_c", "user_id"},
	"cleanliness":  {"cleanlinessRating", "cleanliness_rating_c"},
	"comfort":      {"comfortRating", "comfort_rating_c"},
	"location":     {"locationRating", "location_rating_c"},
	"value":        {"valueRating", "value_rating_c"},
	"overall":      {"overallRating", "overall_rating_c"},
	"text":         {"reviewText", "review_text_c", "text", "comment"},
	"travelerType": {"travelerType", "traveler_type_c"},
	"photos":       {"photos", "photos_c"},
	"helpfulVotes": {"helpfulVotes", "helpful_votes_c"},
	"createdAt":    {"createdAt", "created_at_c", "CreatedOn"},
}

// defaultPolicy is the documented fallback when a stored policy field
// is absent or fails to decode.
var defaultPolicy = domain.Policy{
	CheckIn:      "3:00 PM",
	CheckOut:     "11:00 AM",
	Cancellation: "Free cancellation",
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func aliasStr(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if v := lookupAny(m, p); v != nil {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// aliasFloat accepts float64/int/json.Number/string; absent → 0.
func aliasFloat(m map[string]any, aliases map[string][]string, key string) float64 {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f
			}
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func aliasInt(m map[string]any, aliases map[string][]string, key string) int {
	return int(aliasFloat(m, aliases, key))
}

// aliasID tolerates ids stored as numbers or numeric strings.
func aliasID(m map[string]any, aliases map[string][]string, key string) int64 {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return int64(v)
		case int64:
			return v
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// aliasIDPtr distinguishes "absent" from zero for nullable references.
func aliasIDPtr(m map[string]any, aliases map[string][]string, key string) *int64 {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			n := int64(v)
			return &n
		case int64:
			n := v
			return &n
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

func aliasBool(m map[string]any, aliases map[string][]string, key string) bool {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		case float64:
			return v != 0
		}
	}
	return false
}

// aliasStrList decodes an embedded list: either a JSON-encoded string
// column or an already-decoded []any. Decode failure → empty list.
func aliasStrList(m map[string]any, aliases map[string][]string, key string) []string {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case string:
			var out []string
			if err := json.Unmarshal([]byte(v), &out); err == nil {
				return out
			}
		case []any:
			out := make([]string, 0, len(v))
			for _, it := range v {
				if s, ok := it.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return []string{}
}

func aliasTime(m map[string]any, aliases map[string][]string, key string) time.Time {
	for _, p := range aliases[key] {
		if s, ok := lookupAny(m, p).(string); ok && s != "" {
			for _, layout := range []string{time.RFC3339, "2006-01-02"} {
				if t, err := time.Parse(layout, s); err == nil {
					return t
				}
			}
		}
	}
	return time.Time{}
}

func aliasTimePtr(m map[string]any, aliases map[string][]string, key string) *time.Time {
	if t := aliasTime(m, aliases, key); !t.IsZero() {
		return &t
	}
	return nil
}

/********** entity normalizers **********/

func normalizeHotel(rec map[string]any) domain.Hotel {
	h := domain.Hotel{
		ID:                 aliasID(rec, hotelAliases, "id"),
		Name:               aliasStr(rec, hotelAliases, "name"),
		StarRating:         aliasInt(rec, hotelAliases, "stars"),
		Description:        aliasStr(rec, hotelAliases, "description"),
		Address:            aliasStr(rec, hotelAliases, "address"),
		City:               aliasStr(rec, hotelAliases, "city"),
		Country:            aliasStr(rec, hotelAliases, "country"),
		Lat:                aliasFloat(rec, hotelAliases, "lat"),
		Lon:                aliasFloat(rec, hotelAliases, "lon"),
		Photos:             aliasStrList(rec, hotelAliases, "photos"),
		Amenities:          aliasStrList(rec, hotelAliases, "amenities"),
		Policies:           defaultPolicy,
		ContactEmail:       aliasStr(rec, hotelAliases, "email"),
		ContactPhone:       aliasStr(rec, hotelAliases, "phone"),
		DistanceFromCenter: aliasFloat(rec, hotelAliases, "distance"),
		AverageRating:      aliasFloat(rec, hotelAliases, "avgRating"),
		ReviewCount:        aliasInt(rec, hotelAliases, "reviewCount"),
	}
	if s := aliasStr(rec, hotelAliases, "policies"); s != "" {
		var p domain.Policy
		if err := json.Unmarshal([]byte(s), &p); err == nil && p != (domain.Policy{}) {
			if p.CheckIn == "" {
				p.CheckIn = defaultPolicy.CheckIn
			}
			if p.CheckOut == "" {
				p.CheckOut = defaultPolicy.CheckOut
			}
			if p.Cancellation == "" {
				p.Cancellation = defaultPolicy.Cancellation
			}
			h.Policies = p
		}
	}
	return h
}

func normalizeRoom(rec map[string]any) domain.Room {
	r := domain.Room{
		ID:            aliasID(rec, roomAliases, "id"),
		HotelID:       aliasID(rec, roomAliases, "hotelId"),
		Name:          aliasStr(rec, roomAliases, "name"),
		Type:          aliasStr(rec, roomAliases, "type"),
		Capacity:      aliasInt(rec, roomAliases, "capacity"),
		BedConfig:     aliasStr(rec, roomAliases, "bedConfig"),
		Photos:        aliasStrList(rec, roomAliases, "photos"),
		Amenities:     aliasStrList(rec, roomAliases, "amenities"),
		PricePerNight: aliasFloat(rec, roomAliases, "price"),
		Available:     aliasBool(rec, roomAliases, "available"),
		MaxOccupancy:  aliasInt(rec, roomAliases, "maxOcc"),
	}
	if r.MaxOccupancy == 0 {
		r.MaxOccupancy = r.Capacity
	}
	return r
}

func normalizeBooking(rec map[string]any) domain.Booking {
	return domain.Booking{
		ID:                 aliasID(rec, bookingAliases, "id"),
		ConfirmationNumber: aliasStr(rec, bookingAliases, "confirmation"),
		UserID:             aliasStr(rec, bookingAliases, "userId"),
		HotelID:            aliasID(rec, bookingAliases, "hotelId"),
		RoomID:             aliasIDPtr(rec, bookingAliases, "roomId"),
		CheckIn:            aliasTime(rec, bookingAliases, "checkIn"),
		CheckOut:           aliasTime(rec, bookingAliases, "checkOut"),
		GuestCount:         aliasInt(rec, bookingAliases, "guestCount"),
		GuestName:          aliasStr(rec, bookingAliases, "guestName"),
		GuestEmail:         aliasStr(rec, bookingAliases, "guestEmail"),
		GuestPhone:         aliasStr(rec, bookingAliases, "guestPhone"),
		SpecialRequests:    aliasStr(rec, bookingAliases, "requests"),
		PromoCode:          aliasStr(rec, bookingAliases, "promoCode"),
		Subtotal:           aliasFloat(rec, bookingAliases, "subtotal"),
		Taxes:              aliasFloat(rec, bookingAliases, "taxes"),
		Discount:           aliasFloat(rec, bookingAliases, "discount"),
		Total:              aliasFloat(rec, bookingAliases, "total"),
		PaymentMethod:      aliasStr(rec, bookingAliases, "payMethod"),
		PaymentStatus:      domain.PaymentStatus(aliasStr(rec, bookingAliases, "payStatus")),
		Status:             domain.BookingStatus(aliasStr(rec, bookingAliases, "status")),
		CancellationReason: aliasStr(rec, bookingAliases, "cancelReason"),
		CancelledAt:        aliasTimePtr(rec, bookingAliases, "cancelledAt"),
		CreatedAt:          aliasTime(rec, bookingAliases, "createdAt"),
	}
}

func normalizeReview(rec map[string]any) domain.Review {
	return domain.Review{
		ID:                aliasID(rec, reviewAliases, "id"),
		HotelID:           aliasID(rec, reviewAliases, "hotelId"),
		BookingID:         aliasIDPtr(rec, reviewAliases, "bookingId"),
		UserID:            aliasStr(rec, reviewAliases, "userId"),
		CleanlinessRating: aliasInt(rec, reviewAliases, "cleanliness"),
		ComfortRating:     aliasInt(rec, reviewAliases, "comfort"),
		LocationRating:    aliasInt(rec, reviewAliases, "location"),
		ValueRating:       aliasInt(rec, reviewAliases, "value"),
		OverallRating:     aliasInt(rec, reviewAliases, "overall"),
		Text:              aliasStr(rec, reviewAliases, "text"),
		TravelerType:      aliasStr(rec, reviewAliases, "travelerType"),
		Photos:            aliasStrList(rec, reviewAliases, "photos"),
		HelpfulVotes:      aliasInt(rec, reviewAliases, "helpfulVotes"),
		CreatedAt:         aliasTime(rec, reviewAliases, "createdAt"),
	}
}
