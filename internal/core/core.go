package core

import (
	"database/sql"
	"errors"
	"net"
	"os"
	"strconv"
)

// Address joins host and port, bracketing IPv6 hosts.
func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// https://stackoverflow.com/a/12518877
func FileExists(filePath string) (bool, error) {
	if _, err := os.Stat(filePath); err == nil {
		return true, nil
	} else if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else {
		return false, err
	}
}

func Optional[T any](optional *T, defaulT T) T {
	if optional != nil {
		return *optional
	}
	return defaulT
}

func SQLNullToNull[T any](t sql.Null[T]) *T {
	if t.Valid {
		return &t.V
	}
	return nil
}

func NullToSQLNull[T any](t *T) sql.Null[T] {
	if t == nil {
		return sql.Null[T]{
			Valid: false,
		}
	}
	return sql.Null[T]{
		V:     *t,
		Valid: true,
	}
}

// Wrap maps i into [0, max) for any sign of i.
func Wrap(i, max int) int {
	return ((i % max) + max) % max
}
