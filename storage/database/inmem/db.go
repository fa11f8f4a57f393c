// Package inmemdb implements the repositories in memory; used by tests and the "memory" database engine.
package inmemdb

import (
	"sync"

	"github.com/trezcool/alumni/core/alumni"
	"github.com/trezcool/alumni/core/user"
)

type (
	DB struct {
		user   *userTable
		alumni *alumniTable
	}

	userTable struct {
		mu    sync.RWMutex
		table map[string]*user.User
	}

	alumniTable struct {
		mu    sync.RWMutex
		table []alumni.Record // insertion order
	}
)

func Open() *DB {
	return &DB{
		user:   &userTable{table: make(map[string]*user.User)},
		alumni: &alumniTable{},
	}
}
