package types

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	MongoURI         string `envconfig:"MONGO_URI"`
	MongoDatabase    string `envconfig:"MONGO_DATABASE" default:"uplift"`
	MongoMaxPoolSize uint64 `envconfig:"MONGO_MAX_POOL_SIZE"`

	// Sliding session lifetime; tokens idle longer than this expire.
	TokenTTLSec int32 `envconfig:"TOKEN_TTL_SEC" default:"604800"` // 7 days

	// When true, a status change on a missing participation is reported as
	// an error instead of a silent zero-match.
	StrictStatusChange bool `envconfig:"STRICT_STATUS_CHANGE"`

	// Object storage for covers and avatars.
	UploadsBucket  string `envconfig:"UPLOADS_BUCKET"`
	UploadsBaseURL string `envconfig:"UPLOADS_BASE_URL"`

	// Seed fan-out (seed command only).
	SeedStudents   int `envconfig:"SEED_STUDENTS" default:"100"`
	SeedDonors     int `envconfig:"SEED_DONORS" default:"40"`
	SeedNonProfits int `envconfig:"SEED_NONPROFITS" default:"20"`
}
