package dto

import "io"

type ProductRequest struct {
	// Name and Category are nil when the form omitted them.
	Name     *string
	Price    float64
	Category *string
	// Image is nil when the request carried no image part.
	Image *ImageFile
}

type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ProductUpdateRequest is the raw field set of a partial update.
type ProductUpdateRequest map[string]interface{}
