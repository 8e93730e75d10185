package domain

import "time"

// Product is a catalog entry.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductImage is the metadata record for a stored image file. Filename is
// server-generated; the bytes live in the file store under that name.
type ProductImage struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}
