package mysql

const listHotelsSQL = `
SELECT id, name, location, price, rating, amenities, description
FROM hotels
ORDER BY id
`

const insertHotelSQL = `
INSERT INTO hotels
  (name, location, price, rating, amenities, description)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const insertHotelWithIDSQL = `
INSERT INTO hotels
  (id, name, location, price, rating, amenities, description)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

// Open sets clientFoundRows so an unchanged price still counts as a matched row.
const updatePriceSQL = `UPDATE hotels SET price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

const insertHotelsPrefix = "INSERT INTO hotels\n  (name, location, price, rating, amenities, description)\nVALUES "
