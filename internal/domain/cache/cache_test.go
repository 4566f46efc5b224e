package cache_test

import (
	"context"
	"testing"

	"github.com/openfield/gridiron/internal/domain/cache"
	"github.com/openfield/gridiron/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given an unbounded cache", t, func() {
		c := cache.NewInMemoryCache()

		Convey("A stored result comes back intact", func() {
			c.Put(ctx, "GB", summary.Result{Team: "GB", Text: "report", Generated: true})

			res, ok := c.Get(ctx, "GB")
			So(ok, ShouldBeTrue)
			So(res.Text, ShouldEqual, "report")
			So(c.Size(), ShouldEqual, 1)
		})

		Convey("A miss reports absence", func() {
			_, ok := c.Get(ctx, "CHI")
			So(ok, ShouldBeFalse)
		})

		Convey("Put overwrites an existing entry", func() {
			c.Put(ctx, "GB", summary.Result{Team: "GB", Text: "one"})
			c.Put(ctx, "GB", summary.Result{Team: "GB", Text: "two"})

			res, _ := c.Get(ctx, "GB")
			So(res.Text, ShouldEqual, "two")
			So(c.Size(), ShouldEqual, 1)
		})

		Convey("Clear empties the cache", func() {
			c.Put(ctx, "GB", summary.Result{Team: "GB"})
			c.Clear(ctx)
			So(c.Size(), ShouldEqual, 0)
		})
	})

	Convey("Given a bounded cache", t, func() {
		c := cache.NewInMemoryCache(cache.WithMaxSize(2))

		Convey("The oldest entry is evicted at capacity", func() {
			c.Put(ctx, "GB", summary.Result{Team: "GB"})
			c.Put(ctx, "CHI", summary.Result{Team: "CHI"})
			c.Put(ctx, "MIN", summary.Result{Team: "MIN"})

			So(c.Size(), ShouldEqual, 2)
			_, ok := c.Get(ctx, "GB")
			So(ok, ShouldBeFalse)
			_, ok = c.Get(ctx, "MIN")
			So(ok, ShouldBeTrue)
		})
	})
}
