package pokedex

import "encoding/json"

// apiEntry is one record of the pokedex.json reference dataset.
// Only the fields used for alias resolution are decoded.
type apiEntry struct {
	ID   json.Number `json:"id"`
	Name apiName     `json:"name"`
}

type apiName struct {
	English string `json:"english"`
	French  string `json:"french"`
}
