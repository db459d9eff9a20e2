package review_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/okian/moniker/internal/domain/review"
	"github.com/okian/moniker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// mockStore marks a fixed set of usernames as taken.
type mockStore struct {
	taken map[string]bool
	err   error
}

func (m *mockStore) Taken(_ context.Context, usernames []string) (map[string]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]bool, len(usernames))
	for _, u := range usernames {
		if m.taken[strings.ToLower(u)] {
			out[strings.ToLower(u)] = true
		}
	}
	return out, nil
}

// mockCompleter returns a canned response or an error.
type mockCompleter struct {
	response string
	err      error
}

func (m *mockCompleter) Complete(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestReview(t *testing.T) {
	ctx := context.Background()

	Convey("Given a reviewer without a chat model", t, func() {
		store := &mockStore{taken: map[string]bool{"ali_taken": true}}
		r := review.New(store)

		Convey("When reviewing candidates containing taken names", func() {
			got, err := r.Review(ctx, "Ali", []string{"ali_taken", "ali_dev", "ali123", "alireza"})

			Convey("Then taken candidates should be dropped", func() {
				So(err, ShouldBeNil)
				So(got, ShouldNotContain, "ali_taken")
			})

			Convey("And the default suggestion count should cap the result", func() {
				So(len(got), ShouldEqual, 3)
			})
		})

		Convey("When every candidate is taken", func() {
			store.taken = map[string]bool{"a1": true, "b2": true}
			got, err := r.Review(ctx, "Ali", []string{"a1", "b2"})

			Convey("Then an empty non-nil slice should come back", func() {
				So(err, ShouldBeNil)
				So(got, ShouldNotBeNil)
				So(len(got), ShouldEqual, 0)
			})
		})

		Convey("When candidates differ only in shape quality", func() {
			// well-formed mid-length vs digit-heavy vs too short
			got, err := r.Review(ctx, "Ali", []string{"a1", "ali94213", "ali_dev"})

			Convey("Then the readable mid-length candidate should rank first", func() {
				So(err, ShouldBeNil)
				So(got[0], ShouldEqual, "ali_dev")
			})
		})

		Convey("When the store fails", func() {
			store.err = errors.New("db locked")
			_, err := r.Review(ctx, "Ali", []string{"ali_dev"})

			Convey("Then the failure should surface", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "filter taken")
			})
		})
	})

	Convey("Given a reviewer with a chat model", t, func() {
		store := &mockStore{}

		Convey("When the model prefers one candidate strongly", func() {
			completer := &mockCompleter{response: "ali_dev: 10\nali_pro: 95\nalirezaa: 40"}
			r := review.New(store, review.WithCompleter(completer))

			got, err := r.Review(ctx, "Ali", []string{"ali_dev", "ali_pro", "alirezaa"})

			Convey("Then the blended ranking should follow the model", func() {
				So(err, ShouldBeNil)
				So(got[0], ShouldEqual, "ali_pro")
			})
		})

		Convey("When the model response is garbage", func() {
			completer := &mockCompleter{response: "I think these are all great!"}
			r := review.New(store, review.WithCompleter(completer))

			got, err := r.Review(ctx, "Ali", []string{"ali_dev", "ali_pro"})

			Convey("Then heuristic ranking should still produce results", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
			})
		})

		Convey("When the model fails", func() {
			completer := &mockCompleter{err: errors.New("timeout")}
			r := review.New(store, review.WithCompleter(completer))

			got, err := r.Review(ctx, "Ali", []string{"ali_dev", "ali_pro", "alireza", "ali123"})

			Convey("Then ranking should degrade to the heuristic", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 3)
			})
		})

		Convey("When model scores exceed the scale", func() {
			completer := &mockCompleter{response: "ali_dev: 900\nali_pro: -40"}
			r := review.New(store, review.WithCompleter(completer))

			got, err := r.Review(ctx, "Ali", []string{"ali_dev", "ali_pro"})

			Convey("Then clamped scores should keep the ranking sane", func() {
				So(err, ShouldBeNil)
				So(got[0], ShouldEqual, "ali_dev")
			})
		})
	})

	Convey("Given a custom suggestion count", t, func() {
		r := review.New(&mockStore{}, review.WithSuggestionCount(1))

		Convey("When reviewing several candidates", func() {
			got, err := r.Review(ctx, "Ali", []string{"ali_dev", "ali_pro", "alireza"})

			Convey("Then only one suggestion should come back", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a pure heuristic weight", t, func() {
		completer := &mockCompleter{response: "bad1: 100\ngood_username: 0"}
		r := review.New(&mockStore{},
			review.WithCompleter(completer),
			review.WithLLMWeight(0),
		)

		Convey("When the model disagrees with the heuristic", func() {
			got, err := r.Review(ctx, "Ali", []string{"bad1", "good_username"})

			Convey("Then the heuristic alone should decide", func() {
				So(err, ShouldBeNil)
				So(got[0], ShouldEqual, "good_username")
			})
		})
	})
}
