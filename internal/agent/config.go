package agent

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	APIURL    string
	APIToken  string
	StorePath string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8082", "agent port")
	flag.Parse()

	if envPort := os.Getenv("AGENT_PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	apiURL := strings.TrimSpace(os.Getenv("PKGCHECK_API_URL"))
	if apiURL == "" {
		apiURL = "http://localhost:8081"
	}

	storePath := strings.TrimSpace(os.Getenv("PKGCHECK_STORE_PATH"))
	if storePath == "" {
		storePath = filepath.Join("tmp", "analyzed_packages.json")
	}

	return &Config{
		Port:      *port,
		APIURL:    apiURL,
		APIToken:  strings.TrimSpace(os.Getenv("API_TOKEN")),
		StorePath: storePath,
	}, nil
}
