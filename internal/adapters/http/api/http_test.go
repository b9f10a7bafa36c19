package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/harmony/internal/adapters/http/api"
	"github.com/okian/harmony/internal/domain/dataset"
	"github.com/okian/harmony/internal/domain/scoring"
	"github.com/okian/harmony/internal/domain/types"
	"github.com/okian/harmony/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	tasks    []string
	ranking  types.TeamRanking
	rankErr  error
	solo     []types.SoloEntry
	topTeams dataset.Table
	profiles dataset.Table
	traits   dataset.Table
	err      error

	lastTask  string
	lastTopN  int
	lastLimit int
}

func (m *mockDependencies) Tasks(ctx context.Context) ([]string, error) {
	return m.tasks, m.err
}

func (m *mockDependencies) RankTeams(ctx context.Context, task string, topN int) (types.TeamRanking, error) {
	m.lastTask, m.lastTopN = task, topN
	if m.rankErr != nil {
		return types.TeamRanking{}, m.rankErr
	}
	return m.ranking, nil
}

func (m *mockDependencies) BestSolo(ctx context.Context, task string, n int) ([]types.SoloEntry, error) {
	m.lastTask, m.lastTopN = task, n
	return m.solo, m.err
}

func (m *mockDependencies) TopTeams(ctx context.Context, limit int) (dataset.Table, error) {
	m.lastLimit = limit
	return m.topTeams, m.err
}

func (m *mockDependencies) TopSolo(ctx context.Context, limit int) (dataset.Table, error) {
	m.lastLimit = limit
	return dataset.Table{Columns: []string{"Task Name", "Employee Name"}, Rows: [][]string{}}, m.err
}

func (m *mockDependencies) Profiles(ctx context.Context) (dataset.Table, error) {
	return m.profiles, m.err
}

func (m *mockDependencies) Traits(ctx context.Context) (dataset.Table, error) {
	return m.traits, m.err
}

func (m *mockDependencies) Profile(ctx context.Context, name string) (dataset.Table, error) {
	return m.profiles.Where("Name", name), m.err
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newDeps() *mockDependencies {
	return &mockDependencies{
		tasks: []string{"Data Entry", "Design"},
		ranking: types.TeamRanking{
			RunID: "run-1",
			Task:  "Data Entry",
			TopN:  2,
			Teams: []types.TeamEntry{
				{Rank: 1, Team: "A, B, C", Members: []string{"A", "B", "C"}, SkillScore: 24, SynergyScore: 3, TotalScore: 27},
				{Rank: 2, Team: "A, B, D", Members: []string{"A", "B", "D"}, SkillScore: 23, SynergyScore: 3, TotalScore: 26},
			},
		},
		solo: []types.SoloEntry{{Rank: 1, Employee: "A", Score: 10}},
		topTeams: dataset.Table{
			Columns: []string{"Task Name", "Team", "Total Score"},
			Rows:    [][]string{{"Data Entry", "A, B, C", "27"}},
		},
		profiles: dataset.Table{
			Columns: []string{"Name", "Role"},
			Rows:    [][]string{{"Anurag", "Analyst"}, {"Bea", "Clerk"}},
		},
		traits: dataset.Table{Columns: []string{"Employee Name", "Focus"}, Rows: [][]string{{"Anurag", "8"}}},
	}
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, api.Limits{DefaultTopN: 3, MaxTopN: 10})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, target, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	if role != "" {
		req.Header.Set(api.HeaderRole, role)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newMux(newDeps())

		Convey("When registering routes", func() {
			Convey("Then health endpoint should be accessible", func() {
				w := get(mux, "/healthz", "")
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And stats endpoint should be accessible", func() {
				w := get(mux, "/stats", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"started":true`)
			})

			Convey("And dashboard endpoint should serve the role selector", func() {
				w := get(mux, "/dashboard", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, `name="role"`)
				So(body, ShouldContainSubstring, "Task Matching")
				So(body, ShouldContainSubstring, "Please contact Admin for task assignments.")
			})

			Convey("And unknown paths are not found", func() {
				w := get(mux, "/unknown", "")
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSessionHandler(t *testing.T) {
	Convey("Given a registered server", t, func() {
		mux := newMux(newDeps())

		Convey("When an admin asks for the session", func() {
			w := get(mux, "/api/session", "Admin")

			Convey("Then every capability is granted", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Role         string          `json:"role"`
					Capabilities map[string]bool `json:"capabilities"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Role, ShouldEqual, "admin")
				So(body.Capabilities["task_matching"], ShouldBeTrue)
				So(body.Capabilities["insights"], ShouldBeTrue)
				So(body.Capabilities["all_profiles"], ShouldBeTrue)
			})
		})

		Convey("When the role comes from the query string", func() {
			w := get(mux, "/api/session?role=employee", "admin")

			Convey("Then the query wins over the header", func() {
				So(w.Body.String(), ShouldContainSubstring, `"role":"employee"`)
			})
		})

		Convey("When no role is given", func() {
			w := get(mux, "/api/session", "")

			Convey("Then the employee view is used", func() {
				So(w.Body.String(), ShouldContainSubstring, `"role":"employee"`)
				So(w.Body.String(), ShouldContainSubstring, `"self_profile":true`)
				So(w.Body.String(), ShouldContainSubstring, `"task_matching":false`)
			})
		})
	})
}

func TestTeamsHandler(t *testing.T) {
	Convey("Given a registered server", t, func() {
		deps := newDeps()
		mux := newMux(deps)

		Convey("When an admin lists tasks", func() {
			w := get(mux, "/api/tasks", "admin")

			Convey("Then the task names are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"tasks":["Data Entry","Design"]`)
			})
		})

		Convey("When an admin ranks teams without top", func() {
			w := get(mux, "/api/teams?task=Data+Entry", "admin")

			Convey("Then the default top is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastTask, ShouldEqual, "Data Entry")
				So(deps.lastTopN, ShouldEqual, 3)

				var ranking types.TeamRanking
				So(json.Unmarshal(w.Body.Bytes(), &ranking), ShouldBeNil)
				So(ranking.Teams, ShouldHaveLength, 2)
				So(ranking.Teams[0].TotalScore, ShouldEqual, 27)
			})
		})

		Convey("When an employee ranks teams", func() {
			w := get(mux, "/api/teams?task=Data+Entry", "employee")

			Convey("Then access is denied", func() {
				So(w.Code, ShouldEqual, http.StatusForbidden)
				So(decodeError(w)["code"], ShouldEqual, "capability_required")
			})
		})

		Convey("When the task is missing", func() {
			w := get(mux, "/api/teams", "admin")

			Convey("Then a bad request is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When top is not a positive number", func() {
			w := get(mux, "/api/teams?task=X&top=zero", "admin")

			Convey("Then a bad request is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["message"], ShouldContainSubstring, "invalid top")
			})
		})

		Convey("When top exceeds the maximum", func() {
			w := get(mux, "/api/teams?task=X&top=11", "admin")

			Convey("Then limit_exceeded is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the task has too few candidates", func() {
			deps.rankErr = scoring.ErrInsufficientCandidates
			w := get(mux, "/api/teams?task=Design&top=3", "admin")

			Convey("Then the warning is returned as 422", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				body := decodeError(w)
				So(body["code"], ShouldEqual, "insufficient_candidates")
				So(body["message"], ShouldEqual, "not enough employees for a team")
			})
		})

		Convey("When the candidate pool is too large", func() {
			deps.rankErr = scoring.ErrCandidatePoolTooLarge
			w := get(mux, "/api/teams?task=Design", "admin")

			Convey("Then a 422 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(decodeError(w)["code"], ShouldEqual, "candidate_pool_too_large")
			})
		})

		Convey("When ranking fails unexpectedly", func() {
			deps.rankErr = errors.New("boom")
			w := get(mux, "/api/teams?task=Design", "admin")

			Convey("Then a 500 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w)["code"], ShouldEqual, "internal_error")
			})
		})

		Convey("When the ranking cannot be encoded", func() {
			var logs bytes.Buffer
			So(logger.Init(logger.WithWriter(&logs)), ShouldBeNil)
			deps.ranking.Teams[0].TotalScore = math.NaN()
			w := get(mux, "/api/teams?task=Data+Entry", "admin")

			Convey("Then a 500 with a JSON body is returned and logged", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w)["code"], ShouldEqual, "internal_error")
				So(logs.String(), ShouldContainSubstring, "failed to encode response")
			})
		})

		Convey("When asking for the best solo performer", func() {
			w := get(mux, "/api/solo?task=Data+Entry&top=1", "admin")

			Convey("Then the employees are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastTopN, ShouldEqual, 1)
				So(w.Body.String(), ShouldContainSubstring, `"employee":"A"`)
			})
		})

		Convey("When posting to a read route", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/teams?task=X", http.NoBody)
			req.Header.Set(api.HeaderRole, "admin")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestInsightsHandler(t *testing.T) {
	Convey("Given a registered server", t, func() {
		deps := newDeps()
		mux := newMux(deps)

		Convey("When an admin reads the team leaderboard", func() {
			w := get(mux, "/api/insights/teams", "admin")

			Convey("Then the table is returned and the default limit deferred", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 0)
				var table dataset.Table
				So(json.Unmarshal(w.Body.Bytes(), &table), ShouldBeNil)
				So(table.Rows[0][1], ShouldEqual, "A, B, C")
			})
		})

		Convey("When a limit is given", func() {
			w := get(mux, "/api/insights/solo?limit=4", "admin")

			Convey("Then it is passed through", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 4)
			})
		})

		Convey("When the limit is too large", func() {
			w := get(mux, "/api/insights/teams?limit=100", "admin")

			Convey("Then limit_exceeded is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When an employee reads insights", func() {
			w := get(mux, "/api/insights/teams", "employee")

			Convey("Then access is denied", func() {
				So(w.Code, ShouldEqual, http.StatusForbidden)
			})
		})
	})
}

func TestProfilesHandler(t *testing.T) {
	Convey("Given a registered server", t, func() {
		deps := newDeps()
		mux := newMux(deps)

		Convey("When an admin lists profiles and traits", func() {
			profiles := get(mux, "/api/profiles", "admin")
			traits := get(mux, "/api/traits", "admin")

			Convey("Then both tables are returned", func() {
				So(profiles.Code, ShouldEqual, http.StatusOK)
				So(profiles.Body.String(), ShouldContainSubstring, "Bea")
				So(traits.Code, ShouldEqual, http.StatusOK)
				So(traits.Body.String(), ShouldContainSubstring, "Focus")
			})
		})

		Convey("When an employee lists all profiles", func() {
			w := get(mux, "/api/profiles", "employee")

			Convey("Then access is denied", func() {
				So(w.Code, ShouldEqual, http.StatusForbidden)
				So(decodeError(w)["code"], ShouldEqual, "capability_required")
			})
		})

		Convey("When an employee reads their own profile", func() {
			w := get(mux, "/api/profiles/me?name=anurag", "employee")

			Convey("Then only their row is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var table dataset.Table
				So(json.Unmarshal(w.Body.Bytes(), &table), ShouldBeNil)
				So(table.Rows, ShouldResemble, [][]string{{"Anurag", "Analyst"}})
			})
		})

		Convey("When the name is unknown", func() {
			w := get(mux, "/api/profiles/me?name=zed", "employee")

			Convey("Then not found is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(w)["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When the name is missing", func() {
			w := get(mux, "/api/profiles/me", "employee")

			Convey("Then a bad request is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the store fails", func() {
			deps.err = errors.New("disk gone")
			w := get(mux, "/api/traits", "admin")

			Convey("Then a 500 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When serving a request", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)

			Convey("Then the Prometheus exposition is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "harmony_")
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		handler := api.NewStatsHandler(&mockStatsProvider{stats: map[string]interface{}{"tasks": 2}})

		Convey("When handling GET request", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			w := httptest.NewRecorder()
			handler.HandleStats(w, req)

			Convey("Then it should return the stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				So(w.Body.String(), ShouldContainSubstring, `"tasks":2`)
			})
		})

		Convey("When handling POST request", func() {
			req := httptest.NewRequest(http.MethodPost, "/stats", http.NoBody)
			w := httptest.NewRecorder()
			handler.HandleStats(w, req)

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
