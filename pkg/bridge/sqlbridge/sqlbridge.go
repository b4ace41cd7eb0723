// Package sqlbridge implements the primitive operations by delegating them to
// a SQL engine. Each operation runs as one SELECT statement.
package sqlbridge

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"src.zlang.sh/pkg/bridge"
	"src.zlang.sh/pkg/eval/errs"
	"src.zlang.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[sqlbridge] ")

// Supported drivers.
const (
	SQLite = "sqlite3"
	MySQL  = "mysql"
)

// DefaultTimeout is used when Config.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Config configures a Bridge.
type Config struct {
	// Driver is either SQLite or MySQL.
	Driver string
	// DSN is the data source name. For SQLite an empty DSN selects an
	// in-memory database.
	DSN string
	// Timeout bounds each operation, including the initial ping.
	Timeout time.Duration
}

// Bridge is a connection to a SQL engine that evaluates primitive operations.
type Bridge struct {
	db      *sql.DB
	driver  string
	timeout time.Duration
}

type query struct {
	text    string
	boolean bool
}

var queries = map[string]query{
	"+":      {"SELECT ? + ?", false},
	"-":      {"SELECT ? - ?", false},
	"*":      {"SELECT ? * ?", false},
	"/":      {"SELECT ? / ?", false},
	"<=":     {"SELECT ? <= ?", true},
	"equal?": {"SELECT ? = ?", true},
}

// Open connects to the configured engine and checks that it is reachable.
func Open(cfg Config) (*Bridge, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var db *sql.DB
	switch cfg.Driver {
	case SQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		var err error
		db, err = sql.Open(SQLite, dsn)
		if err != nil {
			return nil, err
		}
	case MySQL:
		mc, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("mysql DSN: %w", err)
		}
		if mc.Timeout == 0 {
			mc.Timeout = timeout
		}
		connector, err := mysql.NewConnector(mc)
		if err != nil {
			return nil, err
		}
		db = sql.OpenDB(connector)
	default:
		return nil, fmt.Errorf("unsupported bridge driver %q", cfg.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s: %w", cfg.Driver, err)
	}
	logger.Printf("connected to %s", cfg.Driver)
	return &Bridge{db, cfg.Driver, timeout}, nil
}

// Table returns the operations backed by b.
func (b *Bridge) Table() bridge.Table {
	t := make(bridge.Table, len(queries))
	for name, q := range queries {
		t[name] = b.op(name, q)
	}
	return t
}

// Close closes the connection.
func (b *Bridge) Close() error {
	logger.Printf("closing connection to %s", b.driver)
	return b.db.Close()
}

func (b *Bridge) op(name string, q query) bridge.Op {
	return func(x, y any) (any, error) {
		a, c, err := bridge.Operands(name, x, y)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()
		var result any
		if err := b.db.QueryRowContext(ctx, q.text, a, c).Scan(&result); err != nil {
			logger.Printf("%s failed: %v", name, err)
			return nil, errs.Arithmetic{Op: name, Message: err.Error(), Cause: err}
		}
		return convert(name, result, q.boolean)
	}
}

// Maps a scanned column to a payload. Engines return comparisons as integers.
func convert(name string, v any, boolean bool) (any, error) {
	var f float64
	switch v := v.(type) {
	case nil:
		msg := "no result"
		if name == "/" {
			msg = "division by zero"
		}
		return nil, errs.Arithmetic{Op: name, Message: msg}
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int64:
		f = float64(v)
	case bool:
		if boolean {
			return v, nil
		}
		return nil, errs.Arithmetic{Op: name, Message: "unexpected boolean result"}
	case []byte:
		parsed, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, errs.Arithmetic{Op: name, Message: "unexpected result " + string(v)}
		}
		f = parsed
	default:
		return nil, errs.Arithmetic{Op: name, Message: fmt.Sprintf("unexpected result of type %T", v)}
	}
	if boolean {
		return f != 0, nil
	}
	return f, nil
}
