package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/service/cache/provider/primitive"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetByFunc(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	svc := New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})

	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &payload{Name: "booking", Count: 3}, nil
	}

	var out payload
	req.NoError(svc.GetByFunc(c, "k1", &out, getter))
	req.Equal(payload{Name: "booking", Count: 3}, out)
	req.Equal(1, calls)

	// second read hits cache, getter untouched
	var out2 payload
	req.NoError(svc.GetByFunc(c, "k1", &out2, getter))
	req.Equal(out, out2)
	req.Equal(1, calls)
}

func TestGetMiss(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	svc := New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})

	var out payload
	req.Equal(ErrNotFound, svc.Get(c, "missing", &out))
}

func TestSetGetDel(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	svc := New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})

	req.NoError(svc.Set(c, "k", &payload{Name: "x"}))

	var out payload
	req.NoError(svc.Get(c, "k", &out))
	req.Equal("x", out.Name)

	req.NoError(svc.Del(c, "k"))
	req.Equal(ErrNotFound, svc.Get(c, "k", &out))
}
