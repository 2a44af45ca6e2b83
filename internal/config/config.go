package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Addr           string   `validate:"required,hostname_port"`
	AllowedOrigins []string `validate:"required,dive,required"`
	Dev            bool
	// MoveRate is the number of move requests per second allowed per client.
	MoveRate int `validate:"min=1,max=1000"`
	// WSBufferSize is used for both websocket read and write buffers.
	WSBufferSize int `validate:"min=256,max=65536"`
}

var validate = validator.New()

// Load parses args (without the program name) into a validated Config.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	var (
		addr     = fs.String("addr", "localhost:3000", "listen address (host:port)")
		origins  = fs.String("origins", "http://localhost:5173", "comma separated CORS/websocket origins")
		dev      = fs.Bool("dev", false, "development mode (relaxed rate limits, any origin)")
		moveRate = fs.Int("move-rate", 10, "move requests per second per client")
		wsBuffer = fs.Int("ws-buffer", 1024, "websocket read/write buffer size")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:           *addr,
		AllowedOrigins: splitList(*origins),
		Dev:            *dev,
		MoveRate:       *moveRate,
		WSBufferSize:   *wsBuffer,
	}
	if cfg.Dev {
		cfg.AllowedOrigins = []string{"*"}
		cfg.MoveRate *= 2
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
