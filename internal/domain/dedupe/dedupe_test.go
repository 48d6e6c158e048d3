package dedupe_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"

	dedupe "github.com/okian/careerlens/internal/domain/dedupe"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new in-memory deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		So(d.Size(), ShouldEqual, 0)

		Convey("When a submission is recorded", func() {
			seen, err := d.SeenAndRecord(ctx, "sub-1")

			Convey("Then it is new the first time", func() {
				So(err, ShouldBeNil)
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("Then it is a duplicate the second time", func() {
				again, err := d.SeenAndRecord(ctx, "sub-1")
				So(err, ShouldBeNil)
				So(again, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And it is unrecorded", func() {
				So(d.Unrecord(ctx, "sub-1"), ShouldBeNil)

				Convey("Then it can be submitted again", func() {
					So(d.Size(), ShouldEqual, 0)
					seen, _ := d.SeenAndRecord(ctx, "sub-1")
					So(seen, ShouldBeFalse)
				})
			})
		})

		Convey("When unrecording an unknown id", func() {
			So(d.Unrecord(ctx, "missing"), ShouldBeNil)
			So(d.Size(), ShouldEqual, 0)
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for _, id := range []string{"a", "b", "c", "d"} {
			seen, err := d.SeenAndRecord(ctx, id)
			So(err, ShouldBeNil)
			So(seen, ShouldBeFalse)
		}

		Convey("Then the oldest id is evicted first", func() {
			So(d.Size(), ShouldEqual, 3)
			seen, _ := d.SeenAndRecord(ctx, "d")
			So(seen, ShouldBeTrue)
			seen, _ = d.SeenAndRecord(ctx, "b")
			So(seen, ShouldBeTrue)
			seen, _ = d.SeenAndRecord(ctx, "a")
			So(seen, ShouldBeFalse)
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 1000; i++ {
			_, _ = d.SeenAndRecord(ctx, fmt.Sprintf("sub-%d", i))
		}
		So(d.Size(), ShouldEqual, 1000)
	})

	Convey("Given concurrent submitters", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := 0
		for g := 0; g < 10; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					seen, _ := d.SeenAndRecord(ctx, fmt.Sprintf("sub-%d", j))
					if !seen {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each id is new exactly once", func() {
			So(fresh, ShouldEqual, 100)
			So(d.Size(), ShouldEqual, 100)
		})
	})
}

func TestRedisDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a redis deduper", t, func() {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		d := dedupe.NewRedisDeduper(client, "careerlens:", time.Hour)

		Convey("When a submission is recorded twice", func() {
			first, err := d.SeenAndRecord(ctx, "sub-1")
			So(err, ShouldBeNil)
			second, err := d.SeenAndRecord(ctx, "sub-1")
			So(err, ShouldBeNil)

			Convey("Then only the first is new", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(mr.Exists("careerlens:submission:sub-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the key expires", func() {
			_, _ = d.SeenAndRecord(ctx, "sub-2")
			mr.FastForward(2 * time.Hour)
			seen, err := d.SeenAndRecord(ctx, "sub-2")
			So(err, ShouldBeNil)
			So(seen, ShouldBeFalse)
		})

		Convey("When unrecorded", func() {
			_, _ = d.SeenAndRecord(ctx, "sub-3")
			So(d.Unrecord(ctx, "sub-3"), ShouldBeNil)
			seen, _ := d.SeenAndRecord(ctx, "sub-3")
			So(seen, ShouldBeFalse)
		})

		Convey("When redis is down", func() {
			down, err := miniredis.Run()
			So(err, ShouldBeNil)
			downClient := redis.NewClient(&redis.Options{Addr: down.Addr(), MaxRetries: -1})
			defer downClient.Close()
			down.Close()
			d := dedupe.NewRedisDeduper(downClient, "careerlens:", time.Hour)

			_, err = d.SeenAndRecord(ctx, "sub-4")
			So(errors.Is(err, dedupe.ErrBackend), ShouldBeTrue)
			So(d.Size(), ShouldEqual, -1)
		})
	})
}
