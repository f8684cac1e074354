package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// ProductType is the kind of nicotine product an event refers to.
type ProductType string

const (
	ProductCigarette      ProductType = "cigarette"
	ProductVape           ProductType = "vape"
	ProductCigar          ProductType = "cigar"
	ProductPipe           ProductType = "pipe"
	ProductChewingTobacco ProductType = "chewing_tobacco"
	ProductOther          ProductType = "other"
)

// Mood is the self-reported mood attached to an event.
type Mood string

const (
	MoodStressed Mood = "stressed"
	MoodAnxious  Mood = "anxious"
	MoodBored    Mood = "bored"
	MoodRelaxed  Mood = "relaxed"
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodNeutral  Mood = "neutral"
)

// ConsumptionEvent is a single logged use of a nicotine product.
// ConsumptionTimestamp is kept as the raw RFC3339 string it arrived
// with; downstream analytics parse it and treat failures as dirty data
// rather than dropping the whole event.
type ConsumptionEvent struct {
	ID                   string      `json:"id"`
	UserID               string      `json:"user_id"`
	ProductType          ProductType `json:"product_type"`
	Quantity             int         `json:"quantity"`
	Unit                 string      `json:"unit"`
	ConsumptionTimestamp string      `json:"consumption_timestamp"`
	Trigger              string      `json:"trigger,omitempty"`
	Location             string      `json:"location,omitempty"`
	Mood                 Mood        `json:"mood,omitempty"`
	Intensity            *int        `json:"intensity,omitempty"` // 0–10 scale
	Notes                string      `json:"notes,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
}

// OccurredAt parses the event's consumption timestamp. The second
// return value is false when the timestamp is missing or malformed.
func (e *ConsumptionEvent) OccurredAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, e.ConsumptionTimestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// QuitProfile holds a user's declared quit anchor and pre-quit
// consumption baseline. One profile per user.
type QuitProfile struct {
	UserID                   string    `json:"user_id"`
	QuitAnchor               time.Time `json:"quit_anchor_timestamp"`
	BaselineDailyConsumption float64   `json:"baseline_daily_consumption"`
	CostPerPack              float64   `json:"cost_per_pack"`
	UnitsPerPack             int       `json:"units_per_pack"`
	UpdatedAt                time.Time `json:"updated_at"`
}
