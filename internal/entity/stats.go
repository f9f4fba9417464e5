package entity

// Stats counts finished games by outcome.
type Stats struct {
	XWins int64 `json:"x_wins" redis:"x_wins"`
	OWins int64 `json:"o_wins" redis:"o_wins"`
	Ties  int64 `json:"ties" redis:"ties"`
}
