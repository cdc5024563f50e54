package config

type PgsqlConnectionConf struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

type RedisConnectionConf struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type DatabaseConfig struct {
	Pgsql PgsqlConnectionConf
	Redis RedisConnectionConf
}

func DatabaseConf() *DatabaseConfig {
	return &DatabaseConfig{
		Pgsql: PgsqlConnectionConf{
			Host:     getEnv("POSTGRES_HOST", "db"),
			Port:     getInt("POSTGRES_PORT", 5432),
			Database: getEnv("POSTGRES_DB", "postgres"),
			Username: getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "password"),
		},
		Redis: RedisConnectionConf{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "dispatch"),
		},
	}
}
