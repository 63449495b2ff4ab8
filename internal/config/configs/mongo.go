package configs

import "time"

// Mongo holds configuration for the MongoDB campaign store. It is only
// used when the storage backend is "mongo".
type Mongo struct {
	URI            string        `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"DATABASE" envDefault:"hitpulse"`
	Collection     string        `env:"COLLECTION" envDefault:"campaigns"`
	MaxPoolSize    uint64        `env:"MAX_POOL_SIZE" envDefault:"50"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
}
