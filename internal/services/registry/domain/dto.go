package domain

// FrequentInput asks for a user's most logged products
type FrequentInput struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
}
