package types

// DayCell is one square of the contribution grid.
type DayCell struct {
	Date   string `json:"date"`
	Tokens int    `json:"tokens"`
	Level  int    `json:"level"`
}

// WeekColumn is a Sunday-first column of exactly seven day cells.
type WeekColumn struct {
	Days [7]DayCell `json:"days"`
}

// ContributionGrid is the visualization-ready layout: week columns in
// chronological order covering a contiguous date span. Days without
// usage appear as zero cells rather than being omitted.
type ContributionGrid struct {
	Year        int          `json:"year"`
	StartMonth  int          `json:"start_month"`
	Weeks       []WeekColumn `json:"weeks"`
	TotalTokens int          `json:"total_tokens"`
	PeakTokens  int          `json:"peak_tokens"`
}
