package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/moniker/internal/adapters/http/api"
	"github.com/okian/moniker/internal/domain/match"
	"github.com/okian/moniker/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies with canned behavior.
type mockDeps struct {
	suggestErr   error
	resolveErr   error
	claimErr     error
	claimCreated bool
	enqueueOK    bool
	batchStatus  model.BatchStatus
	batchFound   bool
}

func (m *mockDeps) Suggest(_ context.Context, name string) (model.Suggestion, error) {
	if m.suggestErr != nil {
		return model.Suggestion{}, m.suggestErr
	}
	return model.Suggestion{
		Input:     name,
		Resolved:  "Ali",
		Usernames: []string{"ali_dev", "ali_pro", "alireza"},
	}, nil
}

func (m *mockDeps) Resolve(_ context.Context, name string) (model.Match, error) {
	if m.resolveErr != nil {
		return model.Match{}, m.resolveErr
	}
	return model.Match{
		Text:    "علی",
		Score:   100,
		English: "Ali",
		Index:   0,
		Column:  model.ColumnNative,
	}, nil
}

func (m *mockDeps) Claim(_ context.Context, _ string) (bool, error) {
	if m.claimErr != nil {
		return false, m.claimErr
	}
	return m.claimCreated, nil
}

func (m *mockDeps) EnqueueBatch(_ context.Context, names []string) (string, int, bool) {
	if !m.enqueueOK {
		return "", 0, false
	}
	return "batch-1", len(names), true
}

func (m *mockDeps) BatchResult(_ context.Context, _ string) (model.BatchStatus, bool) {
	return m.batchStatus, m.batchFound
}

// mockStats implements api.StatsProvider.
type mockStats struct{}

func (m *mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

// newTestServer wires a mux with all routes against the given deps.
func newTestServer(deps *mockDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStats{}).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck // test teardown
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestHandlePostSuggest(t *testing.T) {
	Convey("Given the suggest endpoint", t, func() {
		deps := &mockDeps{enqueueOK: true}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting a valid name", func() {
			resp, err := http.Post(srv.URL+"/suggest", "application/json", strings.NewReader(`{"name": "علی"}`))
			So(err, ShouldBeNil)

			Convey("Then the suggestion payload should come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]any
				decodeBody(t, resp, &body)
				So(body["input_name"], ShouldEqual, "علی")
				So(body["resolved_name"], ShouldEqual, "Ali")
				So(body["count"], ShouldEqual, 3)
			})
		})

		Convey("When posting a blank name", func() {
			resp, err := http.Post(srv.URL+"/suggest", "application/json", strings.NewReader(`{"name": "  "}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should reject with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(srv.URL+"/suggest", "application/json", strings.NewReader(`{name}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should reject with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the pipeline fails", func() {
			deps.suggestErr = errors.New("pipeline down")
			resp, err := http.Post(srv.URL+"/suggest", "application/json", strings.NewReader(`{"name": "Ali"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should answer 502", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadGateway)
			})
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(srv.URL + "/suggest")
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should answer 404", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHandleGetResolve(t *testing.T) {
	Convey("Given the resolve endpoint", t, func() {
		deps := &mockDeps{}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When resolving a name", func() {
			resp, err := http.Get(srv.URL + "/resolve?name=aly")
			So(err, ShouldBeNil)

			Convey("Then the match payload should come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]any
				decodeBody(t, resp, &body)
				So(body["input_name"], ShouldEqual, "aly")
				So(body["resolved_name"], ShouldEqual, "Ali")
				So(body["matched"], ShouldEqual, "علی")
				So(body["score"], ShouldEqual, 100)
				So(body["column"], ShouldEqual, "name")
			})
		})

		Convey("When the name parameter is missing", func() {
			resp, err := http.Get(srv.URL + "/resolve")
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should reject with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When nothing matches", func() {
			deps.resolveErr = match.ErrNoMatch
			resp, err := http.Get(srv.URL + "/resolve?name=x")
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should answer 404", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHandlePostClaim(t *testing.T) {
	Convey("Given the claim endpoint", t, func() {
		deps := &mockDeps{claimCreated: true}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When claiming a new username", func() {
			resp, err := http.Post(srv.URL+"/claim", "application/json", strings.NewReader(`{"username": "Ali_Dev"}`))
			So(err, ShouldBeNil)

			Convey("Then it should answer 201 with the lowercased name", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var body map[string]any
				decodeBody(t, resp, &body)
				So(body["username"], ShouldEqual, "ali_dev")
				So(body["created"], ShouldEqual, true)
			})
		})

		Convey("When claiming a taken username", func() {
			deps.claimCreated = false
			resp, err := http.Post(srv.URL+"/claim", "application/json", strings.NewReader(`{"username": "ali_dev"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should answer 200", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When the username is missing", func() {
			resp, err := http.Post(srv.URL+"/claim", "application/json", strings.NewReader(`{}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should reject with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestHandleBatch(t *testing.T) {
	Convey("Given the batch endpoints", t, func() {
		deps := &mockDeps{enqueueOK: true}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting a valid batch", func() {
			resp, err := http.Post(srv.URL+"/batch", "application/json", strings.NewReader(`{"names": ["Ali", "Zahra"]}`))
			So(err, ShouldBeNil)

			Convey("Then it should answer 202 with a batch id", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				var body map[string]any
				decodeBody(t, resp, &body)
				So(body["batch_id"], ShouldEqual, "batch-1")
				So(body["accepted"], ShouldEqual, 2)
			})
		})

		Convey("When the queue pushes back", func() {
			deps.enqueueOK = false
			resp, err := http.Post(srv.URL+"/batch", "application/json", strings.NewReader(`{"names": ["Ali"]}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should answer 429", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
			})
		})

		Convey("When posting an empty batch", func() {
			resp, err := http.Post(srv.URL+"/batch", "application/json", strings.NewReader(`{"names": []}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should reject with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting a batch with a blank name", func() {
			resp, err := http.Post(srv.URL+"/batch", "application/json", strings.NewReader(`{"names": ["Ali", " "]}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should reject with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When fetching a known batch", func() {
			deps.batchFound = true
			deps.batchStatus = model.BatchStatus{
				BatchID:   "batch-1",
				Total:     1,
				Completed: 1,
				Done:      true,
				Items: []model.BatchItem{
					{Name: "Ali", Suggestion: &model.Suggestion{Input: "Ali", Resolved: "Ali", Usernames: []string{"ali_dev"}}},
				},
			}
			resp, err := http.Get(srv.URL + "/batch/batch-1")
			So(err, ShouldBeNil)

			Convey("Then the batch status should come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body model.BatchStatus
				decodeBody(t, resp, &body)
				So(body.Done, ShouldBeTrue)
				So(len(body.Items), ShouldEqual, 1)
				So(body.Items[0].Suggestion.Usernames, ShouldResemble, []string{"ali_dev"})
			})
		})

		Convey("When fetching an unknown batch", func() {
			resp, err := http.Get(srv.URL + "/batch/nope")
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then it should answer 404", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHandleStats(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		srv := newTestServer(&mockDeps{})
		defer srv.Close()

		Convey("When fetching stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)

			Convey("Then the provider payload should come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]any
				decodeBody(t, resp, &body)
				So(body["started"], ShouldEqual, true)
			})
		})
	})
}

func TestHandleHealth(t *testing.T) {
	Convey("Given the health endpoint", t, func() {
		srv := newTestServer(&mockDeps{})
		defer srv.Close()

		Convey("When fetching metrics", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close() //nolint:errcheck // test teardown

			Convey("Then the exposition endpoint should answer 200", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
