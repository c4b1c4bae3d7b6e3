package espn

import "encoding/json"

type scoreboardResponse struct {
	Events []eventResponse `json:"events"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	ShortName    string                `json:"shortName"`
	Status       statusResponse        `json:"status"`
	Competitions []competitionResponse `json:"competitions"`
}

type competitionResponse struct {
	Status      statusResponse       `json:"status"`
	Competitors []competitorResponse `json:"competitors"`
}

type statusResponse struct {
	Type         statusTypeResponse `json:"type"`
	Period       int                `json:"period"`
	DisplayClock string             `json:"displayClock"`
}

type statusTypeResponse struct {
	State string `json:"state"` // pre, in, post, halftime
	Name  string `json:"name"`  // e.g. STATUS_HALFTIME
}

type competitorResponse struct {
	HomeAway string          `json:"homeAway"`
	Team     teamResponse    `json:"team"`
	Score    json.RawMessage `json:"score"` // number, numeric string, or embedded JSON
}

type teamResponse struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}
