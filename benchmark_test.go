package ttlstore_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	pca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/ttlstore"
)

const cardinality = 10000

func keys() []string {
	k := make([]string, cardinality)
	for i := range k {
		k[i] = "oneone" + strconv.Itoa(i)
	}

	return k
}

func Benchmark_Store_concurrent(b *testing.B) {
	ctx := context.Background()
	keys := keys()

	s, err := ttlstore.NewStore(cardinality, time.Minute)
	require.NoError(b, err)

	defer s.Close() // nolint:errcheck

	for _, k := range keys {
		s.SetWithTTL(ctx, k, 123, time.Hour)
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0

		for pb.Next() {
			i++
			k := keys[(i^12345)%cardinality]

			if i%10 == 0 {
				s.SetWithTTL(ctx, k, 123, time.Hour)

				continue
			}

			v, found := s.Get(ctx, k)
			if !found || v.(int) != 123 {
				b.Fail()
			}
		}
	})
}

func Benchmark_Patrickmn_concurrent(b *testing.B) {
	keys := keys()
	c := pca.New(time.Hour, time.Minute)

	for _, k := range keys {
		c.Set(k, 123, time.Hour)
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0

		for pb.Next() {
			i++
			k := keys[(i^12345)%cardinality]

			if i%10 == 0 {
				c.Set(k, 123, time.Hour)

				continue
			}

			v, found := c.Get(k)
			if !found || v.(int) != 123 {
				b.Fail()
			}
		}
	})
}

func Benchmark_Ristretto_concurrent(b *testing.B) {
	keys := keys()

	c, err := ristretto.NewCache(&ristretto.Config[string, int]{
		NumCounters: cardinality * 10,
		MaxCost:     cardinality,
		BufferItems: 64,
	})
	require.NoError(b, err)

	defer c.Close()

	for _, k := range keys {
		c.SetWithTTL(k, 123, 1, time.Hour)
	}

	c.Wait()

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0

		for pb.Next() {
			i++
			k := keys[(i^12345)%cardinality]

			if i%10 == 0 {
				c.SetWithTTL(k, 123, 1, time.Hour)

				continue
			}

			// Ristretto admission may reject entries, so misses are not failures.
			if v, found := c.Get(k); found && v != 123 {
				b.Fail()
			}
		}
	})
}
