package config

// GuidanceConfig carries the tracker thresholds in meters.
type GuidanceConfig struct {
	OffRouteEnterMeters float64 `yaml:"offRouteEnterMeters" validate:"gte=0"`
	OffRouteClearMeters float64 `yaml:"offRouteClearMeters" validate:"gte=0,ltfield=OffRouteEnterMeters"`
	ApproachTurnMeters  float64 `yaml:"approachTurnMeters" validate:"gte=0"`
	AtTurnMeters        float64 `yaml:"atTurnMeters" validate:"gte=0"`
	ArriveMeters        float64 `yaml:"arriveMeters" validate:"gte=0"`
}

// ExtractConfig is the default bounding box for PBF extraction. The CLI
// -bbox flag overrides it.
type ExtractConfig struct {
	North float64 `yaml:"north"`
	South float64 `yaml:"south"`
	East  float64 `yaml:"east"`
	West  float64 `yaml:"west"`
}

// MetricsConfig configures the Prometheus listener. An empty address
// disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// NATSConfig configures the guidance-event publisher.
type NATSConfig struct {
	URL           string `yaml:"url" validate:"omitempty,uri"`
	SubjectPrefix string `yaml:"subjectPrefix"`
}

// Config is the root configuration structure.
type Config struct {
	Guidance GuidanceConfig `yaml:"guidance"`
	Extract  ExtractConfig  `yaml:"extract"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	NATS     NATSConfig     `yaml:"nats"`
}
