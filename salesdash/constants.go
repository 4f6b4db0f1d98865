package salesdash

import (
	"time"

	"github.com/salesdash/salesdash/salesdash/query"
)

const (
	DefaultBatchSize    = 20000
	DefaultMaxPageSize  = query.DefaultMaxPageSize
	DefaultQueryTimeout = 30 * time.Second
)
