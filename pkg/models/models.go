package models

// Mode selects how cards are located and read on a category page
type Mode string

const (
	// ModeEventSessions reads cards tagged as an events session list
	ModeEventSessions Mode = "event_sessions"
	// ModeSeasonCards reads heading+field-list season cards
	ModeSeasonCards Mode = "season_cards"
)

// Valid reports whether m is a supported mode
func (m Mode) Valid() bool {
	return m == ModeEventSessions || m == ModeSeasonCards
}

// Category is one configured page to scrape
type Category struct {
	Key       string `yaml:"key"`
	Label     string `yaml:"label"`
	URL       string `yaml:"url"`
	Mode      Mode   `yaml:"mode"`
	Filter    string `yaml:"filter,omitempty"`
	SignupURL string `yaml:"signup_url,omitempty"`
}

// EffectiveSignupURL returns the override signup URL or the page URL
func (c Category) EffectiveSignupURL() string {
	if c.SignupURL != "" {
		return c.SignupURL
	}
	return c.URL
}

// Event is one training session or season card
type Event struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	SignupURL string `json:"signup_url"`
}

// Camp is one registration-style season card
type Camp struct {
	Title              string `json:"title"`
	Dates              string `json:"dates"`
	RegistrationStarts string `json:"registration_starts"`
	SignupURL          string `json:"signup_url"`
}

// CategoryResult holds the events found for one category
type CategoryResult struct {
	Label  string  `json:"label"`
	URL    string  `json:"url"`
	Events []Event `json:"events"`
}

// TrainingPayload is the document written by a multi-category run
type TrainingPayload struct {
	GeneratedAt string      `json:"generated_at"`
	Categories  *Categories `json:"categories"`
}

// CampsPayload is the document written by the camps run
type CampsPayload struct {
	GeneratedAt string `json:"generated_at"`
	SignupURL   string `json:"signup_url"`
	Camps       []Camp `json:"camps"`
}
