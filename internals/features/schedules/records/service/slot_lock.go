package service

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/configs"
	"schedules_backend/internals/constants"
	database "schedules_backend/internals/databases"
)

// SlotKey is the (day, pair) bucket a record lives in. Conflicts can only
// happen inside one bucket, so holding it serializes check+insert for both
// group and teacher collisions.
type SlotKey struct {
	Day  constants.DayOfWeek
	Pair constants.PairNum
}

func (k SlotKey) less(o SlotKey) bool {
	if k.Day != o.Day {
		return k.Day < o.Day
	}
	return k.Pair < o.Pair
}

func (k SlotKey) advisoryKey() int32 { return int32(k.Day)*10 + int32(k.Pair) }

// SlotLocker is an in-process keyed mutex over buckets.
type SlotLocker struct {
	mu    sync.Mutex
	locks map[SlotKey]*sync.Mutex
}

func NewSlotLocker() *SlotLocker {
	return &SlotLocker{locks: map[SlotKey]*sync.Mutex{}}
}

func (l *SlotLocker) get(k SlotKey) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[k]
	if !ok {
		m = &sync.Mutex{}
		l.locks[k] = m
	}
	return m
}

// Lock takes every key in (day, pair) order and returns the release func.
func (l *SlotLocker) Lock(keys ...SlotKey) func() {
	ordered := sortedKeys(keys)
	held := make([]*sync.Mutex, 0, len(ordered))
	for _, k := range ordered {
		m := l.get(k)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func sortedKeys(keys []SlotKey) []SlotKey {
	out := make([]SlotKey, 0, len(keys))
	seen := map[SlotKey]struct{}{}
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// advisory lock namespace, stable across instances
var advisoryNamespace = func() int32 {
	ns := uuid.NewSHA1(uuid.NameSpaceOID, []byte("schedules.records_in_schedule"))
	return int32(binary.BigEndian.Uint32(ns[:4]))
}()

// lockBuckets takes transaction-scoped advisory locks on Postgres so that
// several service instances serialize on the same buckets. No-op elsewhere.
func lockBuckets(tx *gorm.DB, keys ...SlotKey) error {
	if !database.IsPostgres(tx) || !configs.GetBool("SCHEDULE_ADVISORY_LOCK", true) {
		return nil
	}
	for _, k := range sortedKeys(keys) {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", advisoryNamespace, k.advisoryKey()).Error; err != nil {
			return err
		}
	}
	return nil
}
