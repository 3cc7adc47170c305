package docstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

// EnvTestRedisAddr names a redis server for the redis backend tests. The
// tests are skipped when it is unset.
const EnvTestRedisAddr = "STOREFRONT_TEST_REDIS_ADDR"

func TestRedisStore(t *testing.T) {
	addr := os.Getenv(EnvTestRedisAddr)
	if addr == "" {
		t.Skipf("%s not set", EnvTestRedisAddr)
	}

	cfg := types.RedisConfig{
		Addr:   addr,
		Prefix: fmt.Sprintf("storefront-test-%d:", time.Now().UnixNano()),
	}
	s, err := OpenRedis(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		s.client.Del(context.Background(), s.redisKey(types.KeyRootDocument), s.redisKey(types.KeyActiveTenant))
		s.Close()
	})

	runStoreContract(t, s)
}

func TestOpenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := OpenRedis(ctx, types.RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}
