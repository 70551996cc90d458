package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"scene-compiler/internal/compiler/models"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port           string
	Environment    string
	ReadTimeout    int
	WriteTimeout   int
	BodyLimitMB    int
	AllowOrigins   []string
	DBPath         string
	MigrationsPath string
	Canvas         models.Canvas
	Compiler       models.Options
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3001"),
		Environment:    getEnv("ENV", "development"),
		ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 10),
		BodyLimitMB:    getEnvAsInt("BODY_LIMIT_MB", 8),
		AllowOrigins:   getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		DBPath:         getEnvAllowEmpty("SCENES_DB_PATH", "data/db/scenes.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_init_scenes.sql"),
		Canvas: models.Canvas{
			Width:  getEnvAsFloat("CANVAS_WIDTH", 4000),
			Height: getEnvAsFloat("CANVAS_HEIGHT", 3000),
		},
		Compiler: loadCompilerOptions(),
	}
}

func loadCompilerOptions() models.Options {
	opts := models.DefaultOptions()
	opts.DoorMatchTolerance = getEnvAsFloat("DOOR_TOLERANCE", opts.DoorMatchTolerance)
	opts.MergeEpsilon = getEnvAsFloat("MERGE_EPSILON", opts.MergeEpsilon)
	opts.ProjectionSlack = getEnvAsFloat("PROJECTION_SLACK", opts.ProjectionSlack)
	opts.ClosePathThreshold = getEnvAsFloat("CLOSE_THRESHOLD", opts.ClosePathThreshold)
	opts.SharedWallTolerance = getEnvAsFloat("SHARED_WALL_TOLERANCE", opts.SharedWallTolerance)
	opts.CurveSegmentCount = getEnvAsInt("CURVE_SEGMENTS", opts.CurveSegmentCount)
	opts.ArcSubsegmentCount = getEnvAsInt("ARC_SEGMENTS", opts.ArcSubsegmentCount)
	opts.GenerateWalls = getEnvAsBool("GENERATE_WALLS", opts.GenerateWalls)
	opts.SkipOutdoorWalls = getEnvAsBool("SKIP_OUTDOOR_WALLS", opts.SkipOutdoorWalls)
	opts.DedupeSharedWalls = getEnvAsBool("DEDUPE_WALLS", opts.DedupeSharedWalls)
	opts.LightColor = getEnv("LIGHT_COLOR", opts.LightColor)
	opts.LightAlpha = getEnvAsFloat("LIGHT_ALPHA", opts.LightAlpha)
	opts.LightBrightRatio = getEnvAsFloat("LIGHT_BRIGHT_RATIO", opts.LightBrightRatio)
	opts.DefaultDoorState = models.DoorState(getEnv("DOOR_STATE", string(opts.DefaultDoorState)))
	return opts
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// getEnvAllowEmpty keeps an explicitly empty value; only an unset key
// falls back to the default.
func getEnvAllowEmpty(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultVal
	}
	return list
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
