package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/model"
	"github.com/redis/go-redis/v9"
)

// 無効値として予約されたTMSI
const (
	tmsiReservedZero = 0x00000000
	tmsiReservedAll  = 0xffffffff
)

// tmsiAllocAttempts は使用中の候補を読み飛ばす回数の上限
const tmsiAllocAttempts = 16

// subscriberTable はSubscriberTableインターフェースの実装。
type subscriberTable struct {
	vc  *ValkeyClient
	now func() time.Time
}

// NewSubscriberTable は新しいSubscriberTableを生成する。
func NewSubscriberTable(vc *ValkeyClient) SubscriberTable {
	return &subscriberTable{vc: vc, now: time.Now}
}

// AssignTMSI は採番カウンタからTMSI候補を払い出し、位置登録要求の内容で加入者レコードを更新する。
func (s *subscriberTable) AssignTMSI(ctx context.Context, imsi string, lur *l3.LocationUpdatingRequest) (uint32, error) {
	tmsi, err := s.nextTMSI(ctx)
	if err != nil {
		return 0, err
	}

	key := KeyPrefixSubscriber + imsi
	tmsiHex := model.FormatTMSIHex(tmsi)
	claimed, err := s.vc.Client().HSetNX(ctx, key, "tmsi", tmsiHex).Result()
	if err != nil {
		return 0, wrapErr("HSETNX", key, err)
	}

	fields := map[string]any{"updated_at": s.now().Unix()}
	if lur != nil {
		fields["lai"] = lur.LAI.String()
		fields["classmark1"] = uint8(lur.Classmark)
	}
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		if claimed {
			pipe.Set(ctx, KeyPrefixTMSI+tmsiHex, imsi, 0)
		}
		return nil
	})
	if err != nil {
		return 0, wrapErr("MULTI", key, err)
	}
	return tmsi, nil
}

// nextTMSI は予約値と使用中の値を除いた次のTMSIを採番する。
// カウンタは2^32を法として周回するため、逆引きが残っている候補は読み飛ばす。
func (s *subscriberTable) nextTMSI(ctx context.Context) (uint32, error) {
	for attempt := 0; attempt < tmsiAllocAttempts; {
		n, err := s.vc.Client().Incr(ctx, KeyTMSISequence).Result()
		if err != nil {
			return 0, wrapErr("INCR", KeyTMSISequence, err)
		}
		tmsi := uint32(n)
		if tmsi == tmsiReservedZero || tmsi == tmsiReservedAll {
			continue
		}
		attempt++
		key := KeyPrefixTMSI + model.FormatTMSIHex(tmsi)
		exists, err := s.vc.Client().Exists(ctx, key).Result()
		if err != nil {
			return 0, wrapErr("EXISTS", key, err)
		}
		if exists == 0 {
			return tmsi, nil
		}
	}
	return 0, fmt.Errorf("%w: %d candidates in use", apperr.ErrTMSIExhausted, tmsiAllocAttempts)
}

// TMSI は加入者に割当済みのTMSIを返す。
func (s *subscriberTable) TMSI(ctx context.Context, imsi string) (uint32, bool, error) {
	key := KeyPrefixSubscriber + imsi
	v, err := s.vc.Client().HGet(ctx, key, "tmsi").Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, wrapErr("HGET", key, err)
	}
	tmsi, err := model.ParseTMSIHex(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", apperr.ErrInvalidTMSI, key, err)
	}
	return tmsi, true, nil
}

// IMSI はTMSIの逆引きを行う。
func (s *subscriberTable) IMSI(ctx context.Context, tmsi uint32) (string, error) {
	key := KeyPrefixTMSI + model.FormatTMSIHex(tmsi)
	imsi, err := s.vc.Client().Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", wrapErr("GET", key, err)
	}
	return imsi, nil
}

// SetIMEI は加入者のIMEIを記録する。
func (s *subscriberTable) SetIMEI(ctx context.Context, imsi, imei string) error {
	return s.update(ctx, imsi, map[string]any{"imei": imei})
}

// SetClassmark は加入者のクラスマーク2を記録する。
func (s *subscriberTable) SetClassmark(ctx context.Context, imsi string, cm l3.MobileStationClassmark2) error {
	return s.update(ctx, imsi, map[string]any{"classmark2": cm.Hex()})
}

func (s *subscriberTable) update(ctx context.Context, imsi string, fields map[string]any) error {
	key := KeyPrefixSubscriber + imsi
	fields["updated_at"] = s.now().Unix()
	if err := s.vc.Client().HSet(ctx, key, fields).Err(); err != nil {
		return wrapErr("HSET", key, err)
	}
	return nil
}

// Subscriber は加入者レコードを取得する。
func (s *subscriberTable) Subscriber(ctx context.Context, imsi string) (*model.Subscriber, error) {
	key := KeyPrefixSubscriber + imsi
	result, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrapErr("HGETALL", key, err)
	}
	// キーが存在しない場合、HGetAllは空mapを返す
	if len(result) == 0 {
		return nil, apperr.ErrIMSINotFound
	}

	sub := &model.Subscriber{IMSI: imsi}
	if err := MapToStruct(result, sub); err != nil {
		return nil, fmt.Errorf("subscriber %s: %w", imsi, err)
	}
	return sub, nil
}
