package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/Aman2975/hugli-backend/pkg/config"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/security"
)

const invalidCodeMessage = "invalid or expired code"

type otpStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	OTPKey(purpose, identifier string) string
}

// otpRecord is the Redis payload for a pending one-time code. Only the
// digest is stored, never the code itself.
type otpRecord struct {
	Digest    string    `json:"digest"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `json:"expires_at"`
}

// otpKeeper issues and redeems one-time codes, enforcing the attempt cap
// and single-use semantics.
type otpKeeper struct {
	store otpStore
	cfg   config.OTPConfig
}

func newOTPKeeper(store otpStore, cfg config.OTPConfig) (*otpKeeper, error) {
	if store == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	if cfg.Digits < 4 {
		return nil, fmt.Errorf("otp digits must be at least 4")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("otp max attempts must be positive")
	}
	return &otpKeeper{store: store, cfg: cfg}, nil
}

// Issue generates a fresh code and stores its digest, replacing any pending
// code for the same purpose and identifier.
func (k *otpKeeper) Issue(ctx context.Context, purpose enums.OTPPurpose, identifier string) (string, error) {
	code, err := security.GenerateOTP(k.cfg.Digits)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	record := otpRecord{
		Digest:    security.HashOTP(code, identifier),
		ExpiresAt: time.Now().UTC().Add(k.cfg.TTL),
	}
	if err := k.persist(ctx, purpose, identifier, record); err != nil {
		return "", err
	}
	return code, nil
}

// Redeem consumes the pending code. Wrong guesses burn attempts; the record
// is deleted on success or when the attempt cap is hit.
func (k *otpKeeper) Redeem(ctx context.Context, purpose enums.OTPPurpose, identifier, code string) error {
	key := k.store.OTPKey(purpose.String(), identifier)
	raw, err := k.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load otp")
	}

	var record otpRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// Unreadable record: discard and force a fresh code.
		_ = k.store.Del(ctx, key)
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
	}

	if security.VerifyOTP(code, identifier, record.Digest) {
		if err := k.store.Del(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consume otp")
		}
		return nil
	}

	record.Attempts++
	if record.Attempts >= k.cfg.MaxAttempts {
		_ = k.store.Del(ctx, key)
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many incorrect codes")
	}
	if err := k.persist(ctx, purpose, identifier, record); err != nil {
		return err
	}
	return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
}

func (k *otpKeeper) persist(ctx context.Context, purpose enums.OTPPurpose, identifier string, record otpRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode otp record")
	}
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	key := k.store.OTPKey(purpose.String(), identifier)
	if err := k.store.Set(ctx, key, string(payload), ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store otp")
	}
	return nil
}

// loggingSender is the development delivery channel: the code lands in the
// logs instead of an inbox.
type loggingSender struct {
	logg *logger.Logger
}

func (s *loggingSender) SendCode(ctx context.Context, identifier string, purpose enums.OTPPurpose, code string) error {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"identifier": identifier,
		"purpose":    purpose.String(),
		"code":       code,
	})
	s.logg.Info(ctx, "otp code (dev delivery)")
	return nil
}
