package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	EnvBaseURL        = "WHISPER_BASE_URL"
	EnvConsumerKey    = "WHISPER_CONSUMER_KEY"
	EnvConsumerSecret = "WHISPER_CONSUMER_SECRET"
)

// LoadEnv reads dotenv files into the process environment, already set
// variables win. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "Failed to load ["+file+"]")
		}
	}
	return nil
}

// ApplyEnv fills the blank base url, key and secret from the environment.
func ApplyEnv(args *ArgsList) {
	fill := func(value *string, name string) {
		if *value == "" {
			*value = os.Getenv(name)
		}
	}
	fill(&args.BaseURL, EnvBaseURL)
	fill(&args.Key, EnvConsumerKey)
	fill(&args.Secret, EnvConsumerSecret)
}
