package dto

const (
	EventProductCreated  = "product_created"
	EventProductUpdated  = "product_updated"
	EventProductDeleted  = "product_deleted"
	EventProductsCleared = "products_cleared"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type ProductEvent struct {
	ID       string                 `json:"id,omitempty"`
	Name     *string                `json:"name,omitempty"`
	Price    float64                `json:"price,omitempty"`
	Category *string                `json:"category,omitempty"`
	ImageURL *string                `json:"image_url,omitempty"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
	Count    int64                  `json:"count,omitempty"`
}
