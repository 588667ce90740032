package ports

import "context"

// DBAIInput is one feed row from the dbai collector.
type DBAIInput struct {
	ServerName string
	MetricName string
	MetricData string
}

// SnifferSample is one captured query observed by the mysql sniffer.
type SnifferSample struct {
	Host      string
	User      string
	QueryText string
	Count     int64
}

// SnifferHost identifies a host seen by the sniffer; registration is
// deduplicated.
type SnifferHost struct {
	Host string
	IP   string
}

// MonitorService ingests collector feeds: dbai metrics and mysql
// sniffer captures.
type MonitorService interface {
	FeedDBAI(ctx context.Context, in DBAIInput) (int64, error)
	RecordSamples(ctx context.Context, samples []SnifferSample) error
	RegisterHost(ctx context.Context, in SnifferHost) (DedupResult, error)
}
