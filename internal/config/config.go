package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"1"`

	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiModel       string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiVisionModel string `env:"GEMINI_VISION_MODEL" envDefault:"gemini-2.5-pro"`
	GeminiImageModel  string `env:"GEMINI_IMAGE_MODEL" envDefault:"gemini-2.0-flash-preview-image-generation"`
	GeminiEmbedModel  string `env:"GEMINI_EMBED_MODEL" envDefault:"text-embedding-004"`

	TranslateAPIURL string `env:"TRANSLATE_API_URL" envDefault:"https://translation.googleapis.com/language/translate/v2"`
	TranslateAPIKey string `env:"TRANSLATE_API_KEY"`

	// Umbral para adoptar el idioma detectado sobre la seleccion manual.
	// Se mantiene configurable: el 0.7 heredado es heuristico, no verdad fija.
	DetectOverrideConfidence float64 `env:"DETECT_OVERRIDE_CONFIDENCE" envDefault:"0.7"`

	GenerateTimeoutSeconds  int `env:"GENERATE_TIMEOUT_SECONDS" envDefault:"60"`
	TranslateTimeoutSeconds int `env:"TRANSLATE_TIMEOUT_SECONDS" envDefault:"15"`
	DetectTimeoutSeconds    int `env:"DETECT_TIMEOUT_SECONDS" envDefault:"5"`

	ShareTTLHours int    `env:"SHARE_TTL_HOURS" envDefault:"24"`
	ShareBaseURL  string `env:"SHARE_BASE_URL" envDefault:"http://localhost:8080"`

	JWTSecret       string `env:"JWT_SECRET"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
