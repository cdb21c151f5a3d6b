package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, star_rating, description, address, city, country, lat, lon,
   photos, amenities, policies, contact_email, contact_phone,
   distance_from_center, average_rating, review_count)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name                 = VALUES(name),
  star_rating          = VALUES(star_rating),
  description          = VALUES(description),
  address              = VALUES(address),
  city                 = VALUES(city),
  country              = VALUES(country),
  lat                  = VALUES(lat),
  lon                  = VALUES(lon),
  photos               = VALUES(photos),
  amenities            = VALUES(amenities),
  policies             = VALUES(policies),
  contact_email        = VALUES(contact_email),
  contact_phone        = VALUES(contact_phone),
  distance_from_center = VALUES(distance_from_center),
  average_rating       = VALUES(average_rating),
  review_count         = VALUES(review_count),
  updated_at           = CURRENT_TIMESTAMP
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, name, type, capacity, bed_config, photos, amenities,
   price_per_night, available, max_occupancy)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id        = VALUES(hotel_id),
  name            = VALUES(name),
  type            = VALUES(type),
  capacity        = VALUES(capacity),
  bed_config      = VALUES(bed_config),
  photos          = VALUES(photos),
  amenities       = VALUES(amenities),
  price_per_night = VALUES(price_per_night),
  available       = VALUES(available),
  max_occupancy   = VALUES(max_occupancy)
`

const selectHotelCols = `
  id, name, star_rating, description, address, city, country, lat, lon,
  photos, amenities, policies, contact_email, contact_phone,
  distance_from_center, average_rating, review_count
`

const selectRoomCols = `
  id, hotel_id, name, type, capacity, bed_config, photos, amenities,
  price_per_night, available, max_occupancy
`

const insertBookingSQL = `
INSERT INTO bookings
  (confirmation_number, user_id, hotel_id, room_id, check_in, check_out,
   guest_count, guest_name, guest_email, guest_phone, special_requests,
   promo_code, subtotal, taxes, discount, total, payment_method,
   payment_status, booking_status, cancellation_reason, cancelled_at, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateBookingSQL = `
UPDATE bookings SET
  guest_count         = ?,
  guest_name          = ?,
  guest_email         = ?,
  guest_phone         = ?,
  special_requests    = ?,
  payment_status      = ?,
  booking_status      = ?,
  cancellation_reason = ?,
  cancelled_at        = ?
WHERE id = ?
`

const selectBookingCols = `
  id, confirmation_number, user_id, hotel_id, room_id, check_in, check_out,
  guest_count, guest_name, guest_email, guest_phone, special_requests,
  promo_code, subtotal, taxes, discount, total, payment_method,
  payment_status, booking_status, cancellation_reason, cancelled_at, created_at
`

const insertReviewSQL = `
INSERT INTO reviews
  (hotel_id, booking_id, user_id, cleanliness_rating, comfort_rating,
   location_rating, value_rating, overall_rating, review_text,
   traveler_type, photos, helpful_votes, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateReviewSQL = `
UPDATE reviews SET
  review_text   = ?,
  traveler_type = ?,
  photos        = ?,
  helpful_votes = ?
WHERE id = ?
`

const selectReviewCols = `
  id, hotel_id, booking_id, user_id, cleanliness_rating, comfort_rating,
  location_rating, value_rating, overall_rating, review_text,
  traveler_type, photos, helpful_votes, created_at
`
