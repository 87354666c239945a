package types

// DashboardStats is derived from relationship/favor/recommendation rows and
// cached; it is never persisted.
type DashboardStats struct {
	RelationshipCount   int64 `json:"relationship_count"`
	FavorsGiven         int64 `json:"favors_given"`
	FavorsReceived      int64 `json:"favors_received"`
	NetBalance          int64 `json:"net_balance"`
	OpenRecommendations int64 `json:"open_recommendations"`
}
