package pokeapi

// pokemonResponse is the subset of GET /pokemon/{id} used for artwork.
type pokemonResponse struct {
	Sprites apiSprites `json:"sprites"`
}

type apiSprites struct {
	FrontDefault *string `json:"front_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault *string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

// speciesResponse is the subset of GET /pokemon-species/{id} used for descriptions.
type speciesResponse struct {
	FlavorTextEntries []apiFlavorText `json:"flavor_text_entries"`
}

type apiFlavorText struct {
	FlavorText string `json:"flavor_text"`
	Language   struct {
		Name string `json:"name"`
	} `json:"language"`
}
