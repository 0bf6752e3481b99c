package place

// Place is a catalog entry the assistant can recommend to visitors.
type Place struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	MainImageURL  string   `json:"main_image_url,omitempty"`
	RatingAverage float64  `json:"rating_average,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// Compact is the reference shape embedded in assistant replies, rendered
// by the widget as a clickable card.
type Compact struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	MainImageURL  string  `json:"main_image_url,omitempty"`
	RatingAverage float64 `json:"rating_average,omitempty"`
}

// Compact reduces a catalog entry to its card reference.
func (p Place) Compact() Compact {
	return Compact{
		ID:            p.ID,
		Name:          p.Name,
		MainImageURL:  p.MainImageURL,
		RatingAverage: p.RatingAverage,
	}
}
