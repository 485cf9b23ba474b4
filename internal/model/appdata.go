package model

// AppData is the JSON snapshot blob used for offline bootstrap.
// Sub-pages are intentionally excluded; they are always refetched.
type AppData struct {
	Players         []Player   `json:"players"`
	Groups          []Group    `json:"groups"`
	ActivePlayerIDs []PlayerID `json:"activePlayerIds"`
}
