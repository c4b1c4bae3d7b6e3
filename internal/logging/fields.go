package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldLeague     = "league"
	FieldGameID     = "game_id"
	FieldTeam       = "team"
	FieldProvider   = "provider"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldMode       = "mode"
	FieldPath       = "path"
)
