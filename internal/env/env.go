package env

import (
	"os"
)

const (
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"
	CollabSecretKey  = "COLLAB_SECRET"
	RelayRedisURL    = "RELAY_REDIS_URL"
	RelayRedisPass   = "RELAY_REDIS_PASS"
	WebUrl           = "WEB_URL"
)

// MustValidate panics when any of the given variables is unset. Each binary
// declares its own required set from main.
func MustValidate(required ...string) {
	for _, key := range required {
		if os.Getenv(key) == "" {
			panic("env: required environment variable not set: " + key)
		}
	}
}

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
