package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisKey = "courtsched:booked"

// Redis is a Store backed by a Redis SET, for deployments without a
// persistent filesystem. Members use the same "day_slot" encoding as the
// file backend.
type Redis struct {
	client *redis.Client
	set    map[Key]struct{}
}

func NewRedis(addr, password string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		set:    make(map[Key]struct{}),
	}
}

func (r *Redis) Load(ctx context.Context) error {
	members, err := r.client.SMembers(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("ledger: redis smembers: %w", err)
	}
	for _, m := range members {
		i := strings.LastIndex(m, "_")
		if i <= 0 || i == len(m)-1 {
			continue
		}
		r.set[Key{Day: m[:i], Slot: m[i+1:]}] = struct{}{}
	}
	return nil
}

func (r *Redis) Contains(day, slot string) bool {
	_, ok := r.set[Key{Day: day, Slot: slot}]
	return ok
}

func (r *Redis) Record(ctx context.Context, day, slot string) error {
	r.set[Key{Day: day, Slot: slot}] = struct{}{}
	if err := r.client.SAdd(ctx, redisKey, day+"_"+slot).Err(); err != nil {
		return fmt.Errorf("ledger: redis sadd: %w", err)
	}
	return nil
}

func (r *Redis) Keys() []Key {
	out := make([]Key, 0, len(r.set))
	for k := range r.set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}

func (r *Redis) Clear(ctx context.Context) error {
	r.set = make(map[Key]struct{})
	if err := r.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("ledger: redis del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error { return r.client.Close() }
