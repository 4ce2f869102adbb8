package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"bigwin-backend/internal/config"
	"bigwin-backend/internal/models"
)

// Store is the account document store. Each account is a hash of scalar
// fields plus side keys for history, per-game counters and referrals, and a
// shared sorted set that mirrors every stars balance for ranking queries.
type Store struct {
	client *redis.Client
	ctx    context.Context
}

func NewStore(cfg *config.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &Store{
		client: client,
		ctx:    ctx,
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var ensureAccountScript = redis.NewScript(`
	if redis.call("EXISTS", KEYS[1]) == 1 then
		return 0
	end

	redis.call("HSET", KEYS[1],
		"name", ARGV[1],
		"stars", 0,
		"language", "es",
		"joined", ARGV[2],
		"games_total", 0)
	redis.call("HSET", KEYS[2],
		"dice", 0,
		"darts", 0,
		"bowling", 0,
		"slots", 0)
	redis.call("ZADD", KEYS[3], 0, ARGV[3])

	return 1
`)

// EnsureAccount creates the account with zeroed defaults if it does not
// exist. Creation is atomic; concurrent first contacts race on a single
// EXISTS check inside the script, so exactly one create wins and nobody
// observes a partially written record. Existing accounts are returned
// untouched. When a new account carries a referrer, the back-reference and
// the referrer's list entry are written after the create.
func (s *Store) EnsureAccount(id, name, referrer string) (bool, error) {
	if name == "" {
		name = models.DefaultName
	}

	keys := []string{
		fmt.Sprintf(KeyAccount, id),
		fmt.Sprintf(KeyGames, id),
		KeyRanking,
	}

	created, err := ensureAccountScript.Run(s.ctx, s.client, keys, name, models.NowISO(), id).Int()
	if err != nil {
		return false, fmt.Errorf("failed to ensure account %s: %v", id, err)
	}

	if created == 1 && referrer != "" && referrer != id {
		if err := s.linkReferral(id, referrer); err != nil {
			return true, err
		}
	}

	return created == 1, nil
}

func (s *Store) linkReferral(id, referrer string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(s.ctx, fmt.Sprintf(KeyAccount, id), "referred_by", referrer)
	pipe.RPush(s.ctx, fmt.Sprintf(KeyReferrals, referrer), id)

	if _, err := pipe.Exec(s.ctx); err != nil {
		return fmt.Errorf("failed to link referral %s -> %s: %v", referrer, id, err)
	}
	return nil
}

// GetAccount assembles the full account document. The second return value is
// false when no account exists for the id.
func (s *Store) GetAccount(id string) (*models.Account, bool, error) {
	pipe := s.client.Pipeline()
	fieldsCmd := pipe.HGetAll(s.ctx, fmt.Sprintf(KeyAccount, id))
	historyCmd := pipe.LRange(s.ctx, fmt.Sprintf(KeyHistory, id), 0, -1)
	gamesCmd := pipe.HGetAll(s.ctx, fmt.Sprintf(KeyGames, id))
	referralsCmd := pipe.LRange(s.ctx, fmt.Sprintf(KeyReferrals, id), 0, -1)

	if _, err := pipe.Exec(s.ctx); err != nil && err != redis.Nil {
		return nil, false, fmt.Errorf("failed to load account %s: %v", id, err)
	}

	fields := fieldsCmd.Val()
	if len(fields) == 0 {
		return nil, false, nil
	}

	account := &models.Account{
		Name:        fields["name"],
		Stars:       parseIntField(fields["stars"]),
		Language:    fields["language"],
		GamesTotal:  parseIntField(fields["games_total"]),
		Joined:      fields["joined"],
		LastBonusTS: fields["last_bonus_ts"],
		Referrals:   []string{},
		History:     []json.RawMessage{},
		Games:       make(map[string]int64, len(models.GameNames)),
	}

	if ref, ok := fields["referred_by"]; ok && ref != "" {
		account.ReferredBy = &ref
	}

	if refs := referralsCmd.Val(); len(refs) > 0 {
		account.Referrals = refs
	}

	for _, raw := range historyCmd.Val() {
		account.History = append(account.History, json.RawMessage(raw))
	}

	for game, count := range gamesCmd.Val() {
		account.Games[game] = parseIntField(count)
	}

	return account, true, nil
}

// GetStars returns the current balance snapshot. The second return value is
// false when the account does not exist.
func (s *Store) GetStars(id string) (int64, bool, error) {
	val, err := s.client.HGet(s.ctx, fmt.Sprintf(KeyAccount, id), "stars").Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read stars for %s: %v", id, err)
	}
	return parseIntField(val), true, nil
}

// GetLastBonusTS returns the stored cooldown timestamp, or "" when no bonus
// has been claimed yet.
func (s *Store) GetLastBonusTS(id string) (string, error) {
	val, err := s.client.HGet(s.ctx, fmt.Sprintf(KeyAccount, id), "last_bonus_ts").Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last_bonus_ts for %s: %v", id, err)
	}
	return val, nil
}

var applyBonusScript = redis.NewScript(`
	redis.call("HINCRBY", KEYS[1], "stars", ARGV[1])
	redis.call("HSET", KEYS[1], "last_bonus_ts", ARGV[2])
	redis.call("RPUSH", KEYS[2], ARGV[3])
	redis.call("ZINCRBY", KEYS[3], ARGV[1], ARGV[4])
	return "OK"
`)

// ApplyBonus commits a bonus grant: stars increment, cooldown timestamp and
// ledger append happen in one script so a concurrent claim can never observe
// the increment without the timestamp.
func (s *Store) ApplyBonus(id string, amount int64, ts string, entry []byte) error {
	keys := []string{
		fmt.Sprintf(KeyAccount, id),
		fmt.Sprintf(KeyHistory, id),
		KeyRanking,
	}

	err := applyBonusScript.Run(s.ctx, s.client, keys, amount, ts, entry, id).Err()
	if err != nil {
		return fmt.Errorf("failed to apply bonus for %s: %v", id, err)
	}
	return nil
}

var applyWagerScript = redis.NewScript(`
	redis.call("HINCRBY", KEYS[1], "stars", ARGV[1])
	redis.call("HINCRBY", KEYS[1], "games_total", 1)
	redis.call("HINCRBY", KEYS[2], ARGV[2], 1)
	redis.call("RPUSH", KEYS[3], ARGV[3])
	redis.call("ZINCRBY", KEYS[4], ARGV[1], ARGV[4])
	return "OK"
`)

// ApplyWager commits a settled wager: the balance delta, both play counters
// and the ledger append are applied atomically.
func (s *Store) ApplyWager(id, game string, delta int64, entry []byte) error {
	keys := []string{
		fmt.Sprintf(KeyAccount, id),
		fmt.Sprintf(KeyGames, id),
		fmt.Sprintf(KeyHistory, id),
		KeyRanking,
	}

	err := applyWagerScript.Run(s.ctx, s.client, keys, delta, game, entry, id).Err()
	if err != nil {
		return fmt.Errorf("failed to apply wager for %s: %v", id, err)
	}
	return nil
}

// GetRanking returns up to limit accounts ordered by stars descending. Order
// among equal scores is store-defined.
func (s *Store) GetRanking(limit int64) ([]models.RankingRow, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	entries, err := s.client.ZRevRangeWithScores(s.ctx, KeyRanking, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking: %v", err)
	}

	pipe := s.client.Pipeline()
	nameCmds := make([]*redis.StringCmd, len(entries))
	for i, entry := range entries {
		id := entry.Member.(string)
		nameCmds[i] = pipe.HGet(s.ctx, fmt.Sprintf(KeyAccount, id), "name")
	}

	if _, err := pipe.Exec(s.ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to resolve ranking names: %v", err)
	}

	rows := make([]models.RankingRow, 0, len(entries))
	for i, entry := range entries {
		name := "Anon"
		if n, err := nameCmds[i].Result(); err == nil && n != "" {
			name = n
		}

		rows = append(rows, models.RankingRow{
			ID:    entry.Member.(string),
			Name:  name,
			Stars: int64(entry.Score),
		})
	}

	return rows, nil
}

// GetHistory returns the full ledger in insertion order. A missing account
// yields an empty slice, not an error.
func (s *Store) GetHistory(id string) ([]json.RawMessage, error) {
	raw, err := s.client.LRange(s.ctx, fmt.Sprintf(KeyHistory, id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %v", id, err)
	}

	history := make([]json.RawMessage, 0, len(raw))
	for _, entry := range raw {
		history = append(history, json.RawMessage(entry))
	}
	return history, nil
}

// GetReferrals returns the ids this account referred, oldest first.
func (s *Store) GetReferrals(id string) ([]string, error) {
	refs, err := s.client.LRange(s.ctx, fmt.Sprintf(KeyReferrals, id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read referrals for %s: %v", id, err)
	}
	if refs == nil {
		refs = []string{}
	}
	return refs, nil
}

// DeleteAccount removes every key belonging to an account. Used by tests.
func (s *Store) DeleteAccount(id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(s.ctx,
		fmt.Sprintf(KeyAccount, id),
		fmt.Sprintf(KeyHistory, id),
		fmt.Sprintf(KeyGames, id),
		fmt.Sprintf(KeyReferrals, id),
	)
	pipe.ZRem(s.ctx, KeyRanking, id)

	_, err := pipe.Exec(s.ctx)
	return err
}

func parseIntField(val string) int64 {
	n, _ := strconv.ParseInt(val, 10, 64)
	return n
}
