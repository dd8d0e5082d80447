package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"time"

	"homestay/internal/app/commands"
)

// ReservationLease bounds how long an unfinished claim blocks its key. A process that dies
// mid-dispatch leaves a claim that stores must let go of after this long.
const ReservationLease = 2 * time.Minute

// ErrRequestInFlight is returned while another dispatch holds the same idempotency key.
var ErrRequestInFlight = errors.New("middleware: request with this idempotency key is in progress")

// IdempotentCommand is implemented by commands that replay their first outcome for a repeated key.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any // pointer matching the handler result type
}

// IdempotencyRecord is either a finished result or, with Pending set, a claim on the key.
type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	Pending    bool
	OccurredAt time.Time
}

// IdempotencyStore must implement Reserve atomically: of several concurrent callers for one
// key, exactly one gets true.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONResultCodec) Decode(data []byte, out any) error { return json.Unmarshal(data, out) }

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

func Idempotency(store IdempotencyStore, codec ResultCodec, logger *slog.Logger) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok || idCmd.IdempotencyKey() == "" {
				return next.Dispatch(ctx, cmd)
			}
			key := cmd.Key() + ":" + idCmd.IdempotencyKey()
			if result, found, err := replay(ctx, store, codec, idCmd, key); found || err != nil {
				return result, err
			}

			reserved, err := store.Reserve(ctx, key)
			if err != nil {
				return nil, err
			}
			if !reserved {
				// Lost the race: the winner either finished or is still running.
				if result, found, err := replay(ctx, store, codec, idCmd, key); found || err != nil {
					return result, err
				}
				return nil, ErrRequestInFlight
			}

			// Failures are not stored: the user re-triggers with the same key after fixing input.
			result, err := next.Dispatch(ctx, cmd)
			if err != nil {
				if relErr := store.Release(context.WithoutCancel(ctx), key); relErr != nil && logger != nil {
					logger.WarnContext(ctx, "idempotency release failed", "key", key, "error", relErr)
				}
				return nil, err
			}
			record := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
			if result != nil {
				payload, encErr := codec.Encode(result)
				if encErr != nil {
					logSaveFailure(ctx, logger, key, encErr)
					return result, nil
				}
				record.Payload = payload
			}
			// The command already took effect; a bookkeeping failure must not invite a resubmit.
			if saveErr := store.Save(context.WithoutCancel(ctx), record); saveErr != nil {
				logSaveFailure(ctx, logger, key, saveErr)
			}
			return result, nil
		})
	}
}

// replay reports found=true only for a finished record; a pending claim comes back as ErrRequestInFlight.
func replay(ctx context.Context, store IdempotencyStore, codec ResultCodec, cmd IdempotentCommand, key string) (any, bool, error) {
	rec, found, err := store.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	if rec.Pending {
		return nil, false, ErrRequestInFlight
	}
	proto := cmd.ResultPrototype()
	if proto == nil {
		return nil, false, errMissingPrototype
	}
	if err := codec.Decode(rec.Payload, proto); err != nil {
		return nil, false, err
	}
	return normalizePrototype(proto), true, nil
}

func logSaveFailure(ctx context.Context, logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.ErrorContext(ctx, "idempotency record not saved", "key", key, "error", err)
}

func normalizePrototype(proto any) any {
	rv := reflect.ValueOf(proto)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Interface()
	}
	return proto
}
