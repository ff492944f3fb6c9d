package steam

import "encoding/json"

// App is one entry of the public app catalog.
type App struct {
	AppID int64  `json:"appid"`
	Name  string `json:"name"`
}

type appListResponse struct {
	AppList struct {
		Apps []App `json:"apps"`
	} `json:"applist"`
}

type vanityResponse struct {
	Response struct {
		SteamID string `json:"steamid"`
		Success int    `json:"success"`
		Message string `json:"message"`
	} `json:"response"`
}

// rawRecord keeps every field of a game or badge object. Numbers are decoded
// as json.Number so that 64-bit IDs survive.
type rawRecord map[string]interface{}

type gamesResponse struct {
	Response struct {
		GameCount  int         `json:"game_count"`
		TotalCount int         `json:"total_count"`
		Games      []rawRecord `json:"games"`
	} `json:"response"`
}

type badgesResponse struct {
	Response struct {
		Badges      []rawRecord  `json:"badges"`
		PlayerXP    *json.Number `json:"player_xp"`
		PlayerLevel *json.Number `json:"player_level"`
	} `json:"response"`
}

type levelResponse struct {
	Response struct {
		PlayerLevel *int64 `json:"player_level"`
	} `json:"response"`
}
