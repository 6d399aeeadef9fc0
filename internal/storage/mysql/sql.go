package mysql

// -----------------------------------------------------------------------------
// CATALOG
// -----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO hotels (name, location, picture_url, rating, num_ratings, stars)
VALUES (?, ?, ?, ?, ?, ?)
`

const insertRoomSQL = `
INSERT INTO rooms (hotel_id, type, price, max_guests)
VALUES (?, ?, ?, ?)
`

const insertRoomPictureSQL = `
INSERT INTO room_pictures (room_id, url)
VALUES (?, ?)
`

const getHotelSQL = `
SELECT id, name, location, picture_url, rating, num_ratings, stars
FROM hotels
WHERE id = ?
`

const listHotelsSQL = `
SELECT id, name, location, picture_url, rating, num_ratings, stars
FROM hotels
ORDER BY id
`

const getRoomSQL = `
SELECT id, hotel_id, type, price, max_guests
FROM rooms
WHERE id = ?
`

const listRoomsByHotelSQL = `
SELECT id, hotel_id, type, price, max_guests
FROM rooms
WHERE hotel_id = ?
ORDER BY id
`

const listAllRoomsSQL = `
SELECT id, hotel_id, type, price, max_guests
FROM rooms
ORDER BY id
`

const listAllPicturesSQL = `
SELECT id, room_id, url
FROM room_pictures
ORDER BY id
`

const listPicturesByHotelSQL = `
SELECT p.id, p.room_id, p.url
FROM room_pictures p
JOIN rooms r ON r.id = p.room_id
WHERE r.hotel_id = ?
ORDER BY p.id
`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

const insertBookingSQL = `
INSERT INTO bookings
  (hotel_id, room_id, user_id, start_date, end_date, nights, guests, breakfast, total_cost)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Hotel and room context is joined in on every read.
const getBookingSQL = `
SELECT b.id, b.hotel_id, b.room_id, b.user_id,
       b.start_date, b.end_date, b.nights, b.guests, b.breakfast, b.total_cost,
       h.name, h.location, h.picture_url, h.rating, h.num_ratings, h.stars,
       r.type, r.price, r.max_guests
FROM bookings b
JOIN hotels h ON h.id = b.hotel_id
JOIN rooms  r ON r.id = b.room_id
WHERE b.id = ?
`

const listUserBookingsSQL = `
SELECT b.id, b.hotel_id, b.room_id, b.user_id,
       b.start_date, b.end_date, b.nights, b.guests, b.breakfast, b.total_cost,
       h.name, h.location, h.picture_url, h.rating, h.num_ratings, h.stars,
       r.type, r.price, r.max_guests
FROM bookings b
JOIN hotels h ON h.id = b.hotel_id
JOIN rooms  r ON r.id = b.room_id
WHERE b.user_id = ?
ORDER BY b.id
`

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const insertUserSQL = `
INSERT INTO users (username, email, password_hash, verification_code, verified, registered_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const getUserByEmailSQL = `
SELECT id, username, email, password_hash, verification_code, verified, registered_at
FROM users
WHERE email = ?
`

const getUserByUsernameSQL = `
SELECT id, username, email, password_hash, verification_code, verified, registered_at
FROM users
WHERE username = ?
`

const userTakenSQL = `
SELECT EXISTS(SELECT 1 FROM users WHERE email = ? OR username = ?)
`

// Conditional on verified=0 so the write reports whether it actually
// transitioned the row; a row swept away concurrently counts as "no".
const markVerifiedSQL = `
UPDATE users
SET verified = 1, verification_code = NULL
WHERE id = ? AND verified = 0
`

const deleteUnverifiedSQL = `
DELETE FROM users
WHERE verified = 0 AND registered_at < ?
`
