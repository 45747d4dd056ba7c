package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/botarena/internal/domain"
)

// Config es la configuración completa de la arena.
type Config struct {
	Arena   ArenaConfig      `yaml:"arena"`
	API     APIConfig        `yaml:"api"`
	HTTP    HTTPConfig       `yaml:"http"`
	Storage StorageConfig    `yaml:"storage"`
	Log     LogConfig        `yaml:"log"`
	Agents  []domain.Profile `yaml:"agents"`
}

// ArenaConfig controla la cadencia del ciclo y la cache de mercados.
type ArenaConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	// ReferenceBook apunta a un YAML con la tabla de probabilidades de
	// referencia. Vacío usa la tabla editorial compilada.
	ReferenceBook string `yaml:"reference_book"`
}

// APIConfig contiene los base URLs de los venues. Vacío usa producción.
type APIConfig struct {
	GammaBase  string `yaml:"gamma_base"`
	KalshiBase string `yaml:"kalshi_base"`
}

// HTTPConfig controla el servidor de la API REST.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	// DSN elige backend por esquema: redis://, postgres://, sqlite:ruta
	// o *.db, y cualquier otra ruta es un directorio de ficheros JSON.
	DSN string `yaml:"dsn"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Con path vacío arranca solo con defaults y variables de entorno.
// Los valores del entorno sobreescriben los del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// CycleInterval devuelve la cadencia del ciclo como time.Duration.
func (c *Config) CycleInterval() time.Duration {
	return time.Duration(c.Arena.IntervalSeconds) * time.Second
}

// CacheTTL devuelve la vida útil de la cache de mercados.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Arena.CacheTTLSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Arena.CacheTTLSeconds = n
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Arena.IntervalSeconds <= 0 {
		// Ciclo horario: con el cap de 168 puntos la curva cubre una semana.
		cfg.Arena.IntervalSeconds = 3600
	}
	if cfg.Arena.CacheTTLSeconds <= 0 {
		cfg.Arena.CacheTTLSeconds = 1500
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "botarena.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if len(cfg.Agents) == 0 {
		cfg.Agents = DefaultAgents()
	}
}
