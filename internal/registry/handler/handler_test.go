package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	jwttoken "socialregistry/internal/jwt_token"
	"socialregistry/internal/platform/metrics"
	"socialregistry/internal/registry/handler/mocks"
	"socialregistry/internal/registry/models"
	dErrors "socialregistry/pkg/domain-errors"
	"socialregistry/pkg/requestcontext"
	"socialregistry/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/registry-mocks.go -package=mocks Service
type GroupHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *mocks.MockService
	token   string
}

func TestGroupHandlerSuite(t *testing.T) {
	suite.Run(t, new(GroupHandlerSuite))
}

func (s *GroupHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)

	jwtService := jwttoken.NewJWTService("test-signing-key", "social-registry", "registry-api")
	token, err := jwtService.GenerateAccessToken("user-1", time.Hour)
	s.Require().NoError(err)
	s.token = token

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger, metrics.New(prometheus.NewRegistry()), jwttoken.NewJWTServiceAdapter(jwtService))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *GroupHandlerSuite) TestAuthentication() {
	s.Run("missing token is rejected", func() {
		rr := testutil.Serve(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/1", nil))
		testutil.AssertError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("token signed with another key is rejected", func() {
		other := jwttoken.NewJWTService("other-key", "social-registry", "registry-api")
		token, err := other.GenerateAccessToken("user-1", time.Hour)
		s.Require().NoError(err)

		req := testutil.WithBearer(testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/1", nil), token)
		rr := testutil.Serve(s.router, req)
		testutil.AssertError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *GroupHandlerSuite) TestGetGroup() {
	s.Run("returns the group projection", func() {
		s.service.EXPECT().GetGroup(gomock.Any(), models.RegistrantID(42)).
			DoAndReturn(func(ctx context.Context, _ models.RegistrantID) (*models.GroupView, error) {
				assert.Equal(s.T(), "user-1", requestcontext.UserID(ctx))
				return &models.GroupView{ID: 42, Name: "Doe Household", IsGroup: true}, nil
			})

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/42", nil)
		rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
		s.Equal(http.StatusOK, rr.Code)
		body := testutil.DecodeJSON[map[string]any](s.T(), rr)
		s.Equal(float64(42), body["id"])
		s.Equal("Doe Household", body["name"])
		s.Equal(true, body["is_group"])
	})

	s.Run("absent group renders null", func() {
		s.service.EXPECT().GetGroup(gomock.Any(), models.RegistrantID(7)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "group not found"))

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/7", nil)
		rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
		s.Equal(http.StatusOK, rr.Code)
		s.JSONEq("null", rr.Body.String())
	})

	s.Run("non numeric id is a bad request", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/abc", nil)
		rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("internal failures hide the cause", func() {
		s.service.EXPECT().GetGroup(gomock.Any(), models.RegistrantID(9)).
			Return(nil, dErrors.New(dErrors.CodeInternal, "failed to load group"))

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/9", nil)
		rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
		testutil.AssertError(s.T(), rr, http.StatusInternalServerError, "internal_error")
		s.NotContains(rr.Body.String(), "failed to load group")
	})
}

func (s *GroupHandlerSuite) TestSearchGroups() {
	for _, path := range []string{BasePath + "/", BasePath + "/search"} {
		s.Run("filters are passed through on "+path, func() {
			s.service.EXPECT().SearchGroups(gomock.Any(), models.GroupSearch{Name: "Doe", ID: 5}).
				Return([]*models.GroupSummary{{ID: 5, Name: "Doe Household"}}, nil)

			req := testutil.NewJSONRequest(s.T(), http.MethodGet, path+"?name=Doe&id=5", nil)
			rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
			s.Equal(http.StatusOK, rr.Code)
			body := testutil.DecodeJSON[[]models.GroupSummary](s.T(), rr)
			s.Require().Len(body, 1)
			s.Equal(models.RegistrantID(5), body[0].ID)
		})
	}

	s.Run("no matches is an empty list", func() {
		s.service.EXPECT().SearchGroups(gomock.Any(), models.GroupSearch{}).
			Return([]*models.GroupSummary{}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/search", nil)
		rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
		s.Equal(http.StatusOK, rr.Code)
		s.JSONEq("[]", rr.Body.String())
	})

	s.Run("zero id filter means no id filter", func() {
		s.service.EXPECT().SearchGroups(gomock.Any(), models.GroupSearch{Name: "Doe"}).
			Return([]*models.GroupSummary{}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/search?name=Doe&id=0", nil)
		rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("invalid id filter is a bad request", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, BasePath+"/search?id=x", nil)
		rr := testutil.Serve(s.router, testutil.WithBearer(req, s.token))
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func TestCreateGroup(t *testing.T) {
	newRouter := func(t *testing.T) (chi.Router, *mocks.MockService, string) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		svc := mocks.NewMockService(ctrl)
		jwtService := jwttoken.NewJWTService("test-signing-key", "social-registry", "registry-api")
		token, err := jwtService.GenerateAccessToken("user-1", time.Hour)
		require.NoError(t, err)
		h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, jwttoken.NewJWTServiceAdapter(jwtService),
			WithRequestTimeout(5*time.Second))
		r := chi.NewRouter()
		h.Register(r)
		return r, svc, token
	}

	testutil.Given(t, "a valid household payload", func(t *testing.T) {
		router, svc, token := newRouter(t)
		birth := models.NewDate(1980, time.March, 2)
		payload := models.GroupInfo{
			Name: "Doe Household",
			Members: []models.MemberInfo{{
				Individual: models.IndividualInfo{GivenName: "Jane", FamilyName: "Doe", Gender: models.GenderFemale, Birthdate: &birth},
				Kind:       []models.KindInfo{{Name: "Head"}},
			}},
		}

		testutil.When(t, "it is posted", func(t *testing.T) {
			svc.EXPECT().RegisterGroup(gomock.Any(), payload).
				Return(&models.GroupView{ID: 11, Name: "Doe Household", IsGroup: true}, nil)

			req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, BasePath+"/", payload), token)
			rr := testutil.Serve(router, req)

			testutil.Then(t, "the created group is returned", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
				body := testutil.DecodeJSON[map[string]any](t, rr)
				assert.Equal(t, float64(11), body["id"])
			})
			testutil.And(t, "the response carries a request id", func(t *testing.T) {
				assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
			})
		})
	})

	testutil.Given(t, "a malformed body", func(t *testing.T) {
		router, _, token := newRouter(t)
		req := testutil.WithBearer(testutil.NewRawJSONRequest(t, http.MethodPost, BasePath+"/", `{"name":`), token)
		rr := testutil.Serve(router, req)

		testutil.Then(t, "it is a bad request", func(t *testing.T) {
			testutil.AssertError(t, rr, http.StatusBadRequest, "bad_request")
		})
	})

	testutil.Given(t, "payloads violating the schema", func(t *testing.T) {
		cases := []struct {
			name    string
			body    string
			message string
		}{
			{"missing group name", `{"members":[]}`, "name is required"},
			{"unknown gender", `{"name":"G","members":[{"individual":{"name":"A","gender":"Unknown"}}]}`, "members[0].individual.gender must be one of"},
			{"blank membership kind", `{"name":"G","members":[{"individual":{"name":"A"},"kind":[{"name":""}]}]}`, "members[0].kind[0].name is required"},
			{"bad email", `{"name":"G","email":"nope"}`, "email must be a valid email address"},
			{"relationship without relation", `{"name":"G","relationships_1":[{"registrant":3}]}`, "relationships_1[0].relation is required"},
			{"blank group name", `{"name":"   "}`, "name is required"},
			{"malformed date", `{"name":"G","registration_date":"15/06/2024"}`, ""},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				router, _, token := newRouter(t)
				req := testutil.WithBearer(testutil.NewRawJSONRequest(t, http.MethodPost, BasePath+"/", tc.body), token)
				rr := testutil.Serve(router, req)

				require.Equal(t, http.StatusBadRequest, rr.Code)
				body := testutil.DecodeJSON[map[string]string](t, rr)
				if tc.message == "" {
					assert.Equal(t, "bad_request", body["error"])
					return
				}
				assert.Equal(t, "validation_error", body["error"])
				assert.Contains(t, body["error_description"], tc.message)
			})
		}
	})

	testutil.Given(t, "a non JSON content type", func(t *testing.T) {
		router, _, token := newRouter(t)
		req := testutil.WithBearer(testutil.NewRawJSONRequest(t, http.MethodPost, BasePath+"/", `name=x`), token)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := testutil.Serve(router, req)

		testutil.Then(t, "it is rejected", func(t *testing.T) {
			assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
		})
	})
}
