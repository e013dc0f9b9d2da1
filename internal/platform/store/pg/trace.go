package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
)

type traceKey struct{}

type traceStart struct {
	sql   string
	nargs int
	at    time.Time
}

// queryLog is a pgx.QueryTracer writing one line per statement
type queryLog struct {
	log  logger.Logger
	slow time.Duration
	all  bool
	now  func() time.Time
}

// Tracer logs statements at or over slow at warn. With all set every other statement
// logs at info as well. Argument values are never logged
func Tracer(log logger.Logger, slow time.Duration, all bool) pgx.QueryTracer {
	return &queryLog{
		log:  log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		slow: slow,
		all:  all,
		now:  time.Now,
	}
}

func (q *queryLog) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: d.SQL, nargs: len(d.Args), at: q.now()})
}

func (q *queryLog) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := q.now().Sub(st.at)
	slow := q.slow > 0 && elapsed >= q.slow

	var evt *zerolog.Event
	switch {
	case d.Err != nil:
		evt = q.log.Error().Err(d.Err)
	case slow:
		evt = q.log.Warn()
	case q.all:
		evt = q.log.Info()
	default:
		return
	}
	evt.Str("sql", compact(st.sql)).
		Int("args", st.nargs).
		Int64("rows", d.CommandTag.RowsAffected()).
		Dur("elapsed", elapsed).
		Bool("slow", slow).
		Msg("pg query")
}

// compact folds runs of whitespace so multi line statements log on one line
func compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
