package store

import "time"

// Config selects and configures the backends Open dials
type Config struct {
	// AppName is reported to both servers
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL logs every statement; otherwise only those slower than SlowQueryMs
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds startup pings, 20 when zero
	ConnectRetries int
	// PingTimeout bounds each startup ping, 3s when zero
	PingTimeout time.Duration
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientName and ClientTag show up in system.query_log
	ClientName  string
	ClientTag   string
	DialTimeout time.Duration
}

func (c CHConfig) clientName(app string) string {
	if c.ClientName != "" {
		return c.ClientName
	}
	return app
}
