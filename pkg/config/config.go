package config

import (
	"fmt"
	"os"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouseConfig holds the connection settings for the optional
// check-history store.
type ClickHouseConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Hosts    []string `json:"hosts" yaml:"hosts"`
	Port     int      `json:"port" yaml:"port"`
	Database string   `json:"database" yaml:"database"`
	Username string   `json:"username" yaml:"username"`
	Password string   `json:"password" yaml:"password"`
	Debug    bool     `json:"debug" yaml:"debug"`
	Protocol string   `json:"protocol" yaml:"protocol"` // native, http
}

func NewClickHouseConfig() *ClickHouseConfig {
	hosts := []string{getEnv("CLICKHOUSE_HOST", "localhost")}
	if hostsEnv := os.Getenv("CLICKHOUSE_HOSTS"); hostsEnv != "" {
		hosts = parseHosts(hostsEnv)
	}

	protocol := getEnv("CLICKHOUSE_PROTOCOL", "native")
	defaultPort := 9000
	if protocol == "http" {
		defaultPort = 8123
	}

	return &ClickHouseConfig{
		Enabled:  getEnvBool("CLICKHOUSE_ENABLED", false),
		Hosts:    hosts,
		Port:     getEnvInt("CLICKHOUSE_PORT", defaultPort),
		Database: getEnv("CLICKHOUSE_DATABASE", "default"),
		Username: getEnv("CLICKHOUSE_USERNAME", "default"),
		Password: getEnv("CLICKHOUSE_PASSWORD", ""),
		Debug:    getEnvBool("CLICKHOUSE_DEBUG", false),
		Protocol: protocol,
	}
}

// GetProtocol returns the wire protocol, defaulting to native
func (c *ClickHouseConfig) GetProtocol() clickhouse.Protocol {
	if c.Protocol == "http" {
		return clickhouse.HTTP
	}
	return clickhouse.Native
}

func (c *ClickHouseConfig) GetAddresses() []string {
	addresses := make([]string, len(c.Hosts))
	for i, host := range c.Hosts {
		addresses[i] = fmt.Sprintf("%s:%d", host, c.Port)
	}
	return addresses
}

func parseHosts(hostsStr string) []string {
	hosts := make([]string, 0)
	current := ""

	for _, char := range hostsStr {
		if char == ',' {
			if current != "" {
				hosts = append(hosts, trimSpace(current))
				current = ""
			}
		} else {
			current += string(char)
		}
	}

	if current != "" {
		hosts = append(hosts, trimSpace(current))
	}

	return hosts
}

func trimSpace(s string) string {
	start := 0
	end := len(s)

	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}

	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}

	return s[start:end]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue := parseIntOrDefault(value, defaultValue); intValue != defaultValue {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func parseIntOrDefault(s string, defaultValue int) int {
	if len(s) == 0 {
		return defaultValue
	}

	result := 0
	for _, char := range s {
		if char < '0' || char > '9' {
			return defaultValue
		}
		result = result*10 + int(char-'0')
	}
	return result
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	return parseHosts(s)
}
