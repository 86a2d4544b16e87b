package dto

type AddProductResponse struct {
	Message   string  `json:"message"`
	ProductID string  `json:"product_id"`
	ImageURL  *string `json:"imageUrl"`
}

type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
}

// ProductResponse is a stored product document with its id rendered as a
// hex string and its image URLs re-signed. Every other field is returned as
// stored.
type ProductResponse map[string]interface{}
