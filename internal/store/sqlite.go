package store

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriver is go-sqlite3 with lower() replaced on every connection.
// The built-in lower() folds ASCII only, while search patterns are folded
// with strings.ToLower, so both sides must use the same folding.
const sqliteDriver = "sqlite3_mindvault"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}
