package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	Mongo  Mongo  `envPrefix:"MONGO_"`
	Stripe Stripe `envPrefix:"STRIPE_"`
}

type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"clubsphere"`
	// Multi-document transactions need a replica set; on a standalone
	// deployment reconciliation falls back to sequential re-entrant writes.
	UseTransactions bool `env:"USE_TRANSACTIONS" envDefault:"false"`
}

type Stripe struct {
	SecretKey string `env:"SECRET_KEY"`
	Currency  string `env:"CURRENCY" envDefault:"usd"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
