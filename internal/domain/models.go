package domain

// Category is one image category. Its position is the index in the list
// returned by the backend; there is no stored position field.
type Category struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"category" validate:"required"`
}

func (c Category) Key() int64 { return c.ID }

// Image belongs to exactly one category. URL is relative to the API base.
type Image struct {
	ID         int64  `json:"id" validate:"gt=0"`
	CategoryID int64  `json:"category_id,omitempty"`
	URL        string `json:"image_url"`
	Premium    bool   `json:"premium"`
}

func (i Image) Key() int64 { return i.ID }

type PromotionalMessage struct {
	ID       int64   `json:"id" validate:"gt=0"`
	Title    string  `json:"message_title"`
	Body     string  `json:"message_body"`
	Topic    string  `json:"topic_name,omitempty"`
	ImageURL *string `json:"image_url"`
	SentAt   *string `json:"sent_at"` // nil until dispatched
}

// Notification is the outgoing form for a topic broadcast.
type Notification struct {
	Title     string
	Body      string
	Topic     string
	ImageName string
	Image     []byte // optional
}

type Report struct {
	Type        string `json:"report_type" validate:"required"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	UniqueUsers int64  `json:"unique_users_count" validate:"gte=0"`
}

type Activity struct {
	ID        int64  `json:"id" validate:"gt=0"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

type UserTotal struct {
	TotalUsers int64 `json:"total_users" validate:"gte=0"`
}
