package config

import "time"

// Config is the root teamdex configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	HTTP     HTTPConfig     `yaml:"http"`
	Language LanguageConfig `yaml:"language"`
	Output   OutputConfig   `yaml:"output"`
	Render   RenderConfig   `yaml:"render"`
	Log      LogConfig      `yaml:"log"`
}

// SourceConfig locates the external reference data.
type SourceConfig struct {
	AliasURL   string `yaml:"alias_url"    env:"TEAMDEX_ALIAS_URL"    env-default:"https://raw.githubusercontent.com/fanzeyi/pokemon.json/master/pokedex.json"`
	AliasPath  string `yaml:"alias_path"   env:"TEAMDEX_ALIAS_PATH"`
	APIBaseURL string `yaml:"api_base_url" env:"TEAMDEX_API_BASE_URL" env-default:"https://pokeapi.co/api/v2"`
}

// HTTPConfig holds outbound request settings.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"       env:"TEAMDEX_HTTP_TIMEOUT"       env-default:"10s"`
	MaxRedirects int           `yaml:"max_redirects" env:"TEAMDEX_HTTP_MAX_REDIRECTS" env-default:"5"`
	UserAgent    string        `yaml:"user_agent"    env:"TEAMDEX_HTTP_USER_AGENT"    env-default:"teamdex"`
}

// LanguageConfig selects which flavor text language is used for descriptions.
type LanguageConfig struct {
	Preferred string `yaml:"preferred" env:"TEAMDEX_LANG_PREFERRED" env-default:"fr"`
	Fallback  string `yaml:"fallback"  env:"TEAMDEX_LANG_FALLBACK"  env-default:"en"`
}

// OutputConfig holds dataset writer settings.
type OutputConfig struct {
	SidecarVariable string `yaml:"sidecar_variable" env:"TEAMDEX_SIDECAR_VARIABLE" env-default:"__TEAM_DATA__"`
}

// RenderConfig holds page renderer settings.
type RenderConfig struct {
	SourceMode string `yaml:"source_mode" env:"TEAMDEX_RENDER_SOURCE" env-default:"file"`
	Title      string `yaml:"title"       env:"TEAMDEX_RENDER_TITLE"  env-default:"Notre équipe"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
