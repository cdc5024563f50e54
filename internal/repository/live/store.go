// Package live keeps the board collections in Redis. Every document is a
// hash of JSON-encoded field values under {prefix}:{kind}:{id}; the sorted
// set {prefix}:{kind} holds the ids in insertion order. Writes are announced
// on {prefix}:changes.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/config"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

type Store struct {
	rdb    redis.UniversalClient
	prefix string
	now    func() time.Time
}

func New(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "dispatch"
	}

	return &Store{
		rdb:    rdb,
		prefix: prefix,
		now:    time.Now,
	}
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, conf config.RedisConnectionConf) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return cli, nil
}

func (s *Store) docKey(kind ingest.Kind, id string) string {
	return s.prefix + ":" + string(kind) + ":" + id
}

func (s *Store) indexKey(kind ingest.Kind) string {
	return s.prefix + ":" + string(kind)
}

func (s *Store) channel() string {
	return s.prefix + ":changes"
}

func (s *Store) LoadJobs(ctx context.Context) ([]ingest.JobDocument, error) {
	const op = "RedisStore.LoadJobs"

	docs, err := load[ingest.JobDocument](ctx, s, ingest.KindJob)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}
	return docs, nil
}

// LoadEmployees returns the roster ordered by rank, highest first.
func (s *Store) LoadEmployees(ctx context.Context) ([]ingest.EmployeeDocument, error) {
	const op = "RedisStore.LoadEmployees"

	docs, err := load[ingest.EmployeeDocument](ctx, s, ingest.KindEmployee)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Rank > docs[j].Rank
	})
	return docs, nil
}

func (s *Store) LoadTrucks(ctx context.Context) ([]ingest.TruckDocument, error) {
	const op = "RedisStore.LoadTrucks"

	docs, err := load[ingest.TruckDocument](ctx, s, ingest.KindTruck)
	if err != nil {
		return nil, dispatch.OpError(op, err)
	}
	return docs, nil
}

func load[T any](ctx context.Context, s *Store, kind ingest.Kind) ([]T, error) {
	ids, err := s.rdb.ZRange(ctx, s.indexKey(kind), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []T{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, s.docKey(kind, id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs := make([]T, 0, len(ids))
	for i, cmd := range cmds {
		hash := cmd.Val()
		if len(hash) == 0 {
			continue
		}

		fields := make(map[string]json.RawMessage, len(hash)+1)
		for k, v := range hash {
			fields[k] = json.RawMessage(v)
		}
		if _, ok := fields["id"]; !ok {
			fields["id"], _ = json.Marshal(ids[i])
		}

		raw, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}

		var doc T
		if err := ingest.DecodeFields(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s %q: %w", kind, ids[i], err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// Apply writes one patch and publishes the change. A set patch on a missing
// document is ENOTFOUND.
func (s *Store) Apply(ctx context.Context, p ingest.Patch) error {
	op := fmt.Sprintf("RedisStore.Apply(%s %s %s)", p.Op, p.Kind, p.ID)

	if !ingest.IsValidKind(string(p.Kind)) {
		return dispatch.OpError(op, dispatch.Errorf(dispatch.EINVALID, "unknown collection %q", p.Kind))
	}
	if p.ID == "" {
		return dispatch.OpError(op, dispatch.Errorf(dispatch.EINVALID, "patch without id"))
	}

	var err error
	switch p.Op {
	case ingest.OpDelete:
		err = s.delete(ctx, p)
	case ingest.OpPut:
		err = s.put(ctx, p)
	case ingest.OpSet:
		err = s.set(ctx, p)
	default:
		err = dispatch.Errorf(dispatch.EINVALID, "unknown patch op %q", p.Op)
	}
	if err != nil {
		return dispatch.OpError(op, err)
	}

	if err := s.publish(ctx, p.Change()); err != nil {
		return dispatch.OpError(op, err)
	}

	return nil
}

func (s *Store) set(ctx context.Context, p ingest.Patch) error {
	key := s.docKey(p.Kind, p.ID)

	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return dispatch.Errorf(dispatch.ENOTFOUND, "%s %q not found", p.Kind, p.ID)
	}

	values, cleared := splitFields(p.Fields)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(values) > 0 {
			pipe.HSet(ctx, key, values)
		}
		if len(cleared) > 0 {
			pipe.HDel(ctx, key, cleared...)
		}
		return nil
	})
	return err
}

func (s *Store) put(ctx context.Context, p ingest.Patch) error {
	key := s.docKey(p.Kind, p.ID)

	values, _ := splitFields(p.Fields)
	values["id"] = mustJSON(p.ID)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, values)
		pipe.ZAddNX(ctx, s.indexKey(p.Kind), redis.Z{
			Score:  float64(s.now().UnixNano()),
			Member: p.ID,
		})
		return nil
	})
	return err
}

func (s *Store) delete(ctx context.Context, p ingest.Patch) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.docKey(p.Kind, p.ID))
		pipe.ZRem(ctx, s.indexKey(p.Kind), p.ID)
		return nil
	})
	return err
}

func (s *Store) publish(ctx context.Context, c ingest.Change) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel(), payload).Err()
}

// SeedIfEmpty writes the given documents into every empty collection.
func (s *Store) SeedIfEmpty(
	ctx context.Context,
	jobs []ingest.JobDocument,
	employees []ingest.EmployeeDocument,
	trucks []ingest.TruckDocument,
) error {
	const op = "RedisStore.SeedIfEmpty"

	seed := func(kind ingest.Kind, n int, doc func(i int) (string, interface{})) error {
		count, err := s.rdb.ZCard(ctx, s.indexKey(kind)).Result()
		if err != nil || count > 0 {
			return err
		}
		for i := 0; i < n; i++ {
			id, d := doc(i)
			p, err := ingest.PutPatch(kind, id, d)
			if err != nil {
				return err
			}
			if err := s.put(ctx, p); err != nil {
				return err
			}
		}
		return nil
	}

	err := seed(ingest.KindEmployee, len(employees), func(i int) (string, interface{}) {
		return employees[i].ID, employees[i]
	})
	if err == nil {
		err = seed(ingest.KindTruck, len(trucks), func(i int) (string, interface{}) {
			return trucks[i].ID, trucks[i]
		})
	}
	if err == nil {
		err = seed(ingest.KindJob, len(jobs), func(i int) (string, interface{}) {
			return jobs[i].ID, jobs[i]
		})
	}
	if err != nil {
		return dispatch.OpError(op, err)
	}

	return nil
}

func splitFields(fields map[string]json.RawMessage) (map[string]interface{}, []string) {
	values := make(map[string]interface{}, len(fields))
	var cleared []string

	for k, v := range fields {
		if ingest.IsNull(v) {
			cleared = append(cleared, k)
			continue
		}
		values[k] = string(v)
	}
	sort.Strings(cleared)

	return values, cleared
}

func mustJSON(v string) string {
	b, _ := json.Marshal(v)
	return string(b)
}
