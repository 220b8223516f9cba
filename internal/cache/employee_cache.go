package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"employee-directory/internal/model"
	"employee-directory/internal/repository"
)

const versionKey = "employees:list:version"

// EmployeeCache keeps filtered list responses in redis. Keys embed a version
// counter; Invalidate bumps it, which instantly orphans every cached list
// without enumerating keys. Orphans age out via TTL.
type EmployeeCache struct {
	client  *redisv9.Client
	listTTL time.Duration
}

func NewEmployeeCache(client *redisv9.Client, listTTL time.Duration) *EmployeeCache {
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}
	return &EmployeeCache{
		client:  client,
		listTTL: listTTL,
	}
}

func (c *EmployeeCache) GetList(ctx context.Context, filter repository.EmployeeFilter) ([]model.Employee, bool, error) {
	key, err := c.listKey(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get employee list failed: %w", err)
	}

	var employees []model.Employee
	if err := json.Unmarshal([]byte(raw), &employees); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached employee list failed: %w", err)
	}
	return employees, true, nil
}

func (c *EmployeeCache) SetList(ctx context.Context, filter repository.EmployeeFilter, employees []model.Employee) error {
	key, err := c.listKey(ctx, filter)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(employees)
	if err != nil {
		return fmt.Errorf("marshal employee list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.listTTL).Err(); err != nil {
		return fmt.Errorf("redis set employee list failed: %w", err)
	}
	return nil
}

// Invalidate bumps the version so every subsequent read misses. Called
// synchronously after each successful create: a listing issued right after a
// create must already contain the new record.
func (c *EmployeeCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("redis bump employee list version failed: %w", err)
	}
	return nil
}

func (c *EmployeeCache) listKey(ctx context.Context, filter repository.EmployeeFilter) (string, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redisv9.Nil {
		return "", fmt.Errorf("redis get employee list version failed: %w", err)
	}

	fields := strings.Join([]string{
		strings.ToLower(filter.Search),
		filter.Department,
		filter.Designation,
		filter.Gender,
	}, "|")
	return fmt.Sprintf("employees:list:v%d:%s", version, fields), nil
}
