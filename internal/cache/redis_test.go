package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/config"
)

func TestNilClientIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	if err := Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v, want nil", err)
	}
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Errorf("SetJSON() error = %v, want nil", err)
	}
	var dest map[string]int
	ok, err := GetJSON(ctx, "k", &dest)
	if ok || err != nil {
		t.Errorf("GetJSON() = (%v, %v), want (false, nil)", ok, err)
	}
	if err := Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v, want nil", err)
	}
}

func TestUserRecommendationsKey(t *testing.T) {
	if got := UserRecommendationsKey("64b7f0c2a1b2c3d4e5f60718"); got != "rec:user:64b7f0c2a1b2c3d4e5f60718" {
		t.Errorf("UserRecommendationsKey() = %q", got)
	}
}

func TestInitRedis_Unreachable(t *testing.T) {
	SetClient(nil)

	err := InitRedis(&config.Config{RedisAddr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("InitRedis() error = nil, want a ping error")
	}
	if client != nil {
		t.Error("client set after a failed ping")
	}
}
