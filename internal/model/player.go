package model

import "time"

// SocialMedia holds a player's handle per platform
type SocialMedia struct {
	Twitter   string `json:"twitter,omitempty"`
	Twitch    string `json:"twitch,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// PlayerStats are career statistics as entered by an admin.
// KDA is stored as given and never recomputed.
type PlayerStats struct {
	Kills   int     `json:"kills" validate:"gte=0"`
	Deaths  int     `json:"deaths" validate:"gte=0"`
	Assists int     `json:"assists" validate:"gte=0"`
	KDA     float64 `json:"kda" validate:"gte=0"`
}

// Player is a roster member shown on the team page
type Player struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	Nickname      string       `json:"nickname"`
	Role          string       `json:"role"`
	Game          string       `json:"game"`
	Bio           string       `json:"bio,omitempty"`
	Image         string       `json:"image,omitempty"`
	SocialMedia   *SocialMedia `json:"socialMedia,omitempty"`
	Stats         PlayerStats  `json:"stats"`
	Achievements  []string     `json:"achievements"`
	PreviousTeams []string     `json:"previousTeams"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
