package config

import (
	"os"
	"strconv"
	"strings"
)

// Recommendation defaults
const (
	// DefaultTopN is the number of articles recommended for a newsletter edition.
	DefaultTopN = 4

	// DefaultMinImpactScore is the lowest impact score kept by the ranker.
	DefaultMinImpactScore = 4

	// DefaultSyncLimit caps how many raw articles a single sync run ingests.
	DefaultSyncLimit = 200
)

// Feed describes one upstream RSS source and the sector its items belong to.
type Feed struct {
	Name            string
	URL             string
	PrimarySector   string
	SecondarySector string
}

// DefaultFeeds maps friendly names to upstream feeds with their sector labels.
var DefaultFeeds = []Feed{
	{Name: "kr-finance", URL: "https://www.mk.co.kr/rss/30100041/", PrimarySector: "finance"},
	{Name: "kr-economy", URL: "https://www.yonhapnewstv.co.kr/category/news/economy/feed/", PrimarySector: "macro_economy", SecondarySector: "finance"},
	{Name: "kr-tech", URL: "https://rss.etnews.com/Section901.xml", PrimarySector: "industry_tech"},
	{Name: "tr", URL: "https://www.technologyreview.com/feed/", PrimarySector: "industry_tech"},
}

// Config holds runtime settings resolved from the environment.
type Config struct {
	Port string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TopN           int
	MinImpactScore int
	SyncLimit      int

	// ExtractContent enables readability fallback for items without a summary.
	ExtractContent bool

	KafkaBrokers        []string
	KafkaSelectionTopic string
	KafkaSyncTopic      string
	KafkaArticleTopic   string
	KafkaGroupID        string

	S3Bucket       string
	S3Region       string
	S3Prefix       string
	S3UsePathStyle bool
}

// Load resolves configuration from environment variables with defaults.
// Callers are expected to have loaded .env (godotenv) beforehand.
func Load() Config {
	return Config{
		Port: GetEnvOrDefault("PORT", "8080"),

		RedisAddr:     GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASS"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		TopN:           getEnvIntOrDefault("TOP_N", DefaultTopN),
		MinImpactScore: getEnvIntOrDefault("MIN_IMPACT_SCORE", DefaultMinImpactScore),
		SyncLimit:      getEnvIntOrDefault("SYNC_LIMIT", DefaultSyncLimit),

		ExtractContent: getEnvBoolOrDefault("EXTRACT_CONTENT", false),

		KafkaBrokers:        splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaSelectionTopic: GetEnvOrDefault("KAFKA_SELECTION_TOPIC", "newsdesk.selections"),
		KafkaSyncTopic:      GetEnvOrDefault("KAFKA_SYNC_TOPIC", "newsdesk.syncs"),
		KafkaArticleTopic:   GetEnvOrDefault("KAFKA_ARTICLE_TOPIC", "scanner.articles"),
		KafkaGroupID:        GetEnvOrDefault("KAFKA_GROUP_ID", "newsdesk"),

		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Prefix:       normalizePrefix(os.Getenv("S3_PREFIX")),
		S3UsePathStyle: getEnvBoolOrDefault("S3_USE_PATH_STYLE", false),
	}
}

// Feeds returns the feed set to sync. Currently the built-in defaults; a
// FEEDS_FILE override can slot in here later without touching callers.
func (c Config) Feeds() []Feed {
	return DefaultFeeds
}

// GetEnvOrDefault returns the value of an environment variable or a default value.
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizePrefix(raw string) string {
	prefix := strings.TrimSpace(raw)
	if prefix == "" {
		return ""
	}
	return strings.Trim(prefix, "/") + "/"
}
