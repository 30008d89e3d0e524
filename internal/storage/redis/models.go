package redis

type UserState struct {
	Step    string   `json:"step"`
	Booking *Booking `json:"booking,omitempty"`
}

// Booking is the in-progress wizard input for one chat. It is never
// submitted anywhere; it only lives as long as the session TTL.
type Booking struct {
	Space     *Space   `json:"space,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
	AddOns    []string `json:"add_ons,omitempty"`

	// QuoteMessageID is the message that is edited in place on every
	// add-on toggle.
	QuoteMessageID int `json:"quote_message_id,omitempty"`
}

type Space struct {
	Bedrooms      int `json:"bedrooms"`
	Bathrooms     int `json:"bathrooms"`
	HalfBaths     int `json:"half_baths"`
	SquareFootage int `json:"square_footage"`
}
