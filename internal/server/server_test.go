package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/event-registration/internal/auth"
	"github.com/sakif/event-registration/internal/model"
	"github.com/sakif/event-registration/internal/seed"
)

// ===========================================================================
// END-TO-END TESTS
// ===========================================================================
// These drive the real router with the real services and a real (in-memory)
// database — only the network listener is skipped. httptest feeds requests
// straight into s.router, which is exactly what ListenAndServe would do.

// newTestServer assembles a fully wired server against an in-memory database
// seeded with the demo catalog and test user.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(Config{
		Port:        0,
		TemplateDir: "../../web/templates",
		StaticDir:   "../../web/static",
		DBPath:      ":memory:",
		JWTSecret:   "test-secret-thats-long-enough",
	}, logger)
	require.NoError(t, err, "New() must assemble the server")
	t.Cleanup(func() { s.db.Close() })

	err = seed.Run(context.Background(), s.db, s.db, auth.NewPasswordServiceForTest(4))
	require.NoError(t, err, "seeding must succeed")

	return s
}

// do sends a request through the router and returns the recorder.
func (s *Server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUp registers a fresh account and returns its token.
func signUp(t *testing.T, s *Server, email, password string) string {
	t.Helper()

	rr := s.do(http.MethodPost, "/api/auth/register", "", credentials{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rr.Code, "register response: %s", rr.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

// TestServer_FullUserJourney walks the whole flow a real client performs:
// sign up, log in, browse the catalog, register for an event, review the
// registrations, cancel, and confirm the list is empty again.
func TestServer_FullUserJourney(t *testing.T) {
	s := newTestServer(t)

	// --- Sign up ---
	signUp(t, s, "u@x.com", "pw123")

	// --- Log in with the same credentials ---
	rr := s.do(http.MethodPost, "/api/auth/login", "", credentials{Email: "u@x.com", Password: "pw123"})
	require.Equal(t, http.StatusOK, rr.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&login))
	token := login.Token

	// --- Browse the catalog ---
	rr = s.do(http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var events []model.Event
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&events))
	require.Len(t, events, 4, "seed catalog has four events")

	var conference *model.Event
	for i := range events {
		if events[i].Title == "Tech Conference 2025" {
			conference = &events[i]
		}
	}
	require.NotNil(t, conference, "seed catalog must include Tech Conference 2025")

	// --- Register for the conference ---
	rr = s.do(http.MethodPost, fmt.Sprintf("/api/events/%s/register", conference.ID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code, "register response: %s", rr.Body.String())

	var registered struct {
		Msg            string `json:"msg"`
		RegistrationID string `json:"registrationId"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&registered))
	assert.Equal(t, "Registered successfully", registered.Msg)
	require.NotEmpty(t, registered.RegistrationID)

	// --- Review registrations ---
	rr = s.do(http.MethodGet, "/api/events/registrations/my", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var mine []model.RegistrationWithEvent
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&mine))
	require.Len(t, mine, 1)
	assert.Equal(t, registered.RegistrationID, mine[0].ID)
	assert.Equal(t, "Tech Conference 2025", mine[0].Event.Title)

	// --- Cancel ---
	rr = s.do(http.MethodDelete, "/api/events/registrations/"+registered.RegistrationID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cancelled successfully")

	// --- The list is empty again ---
	rr = s.do(http.MethodGet, "/api/events/registrations/my", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestServer_SeededTestUserCanLogIn(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/api/auth/login", "", credentials{
		Email:    seed.TestUserEmail,
		Password: seed.TestUserPassword,
	})
	assert.Equal(t, http.StatusOK, rr.Code, "login response: %s", rr.Body.String())
	assert.Contains(t, rr.Body.String(), "token")
}

func TestServer_DuplicateSignUp(t *testing.T) {
	s := newTestServer(t)

	signUp(t, s, "dup@x.com", "pw123")

	rr := s.do(http.MethodPost, "/api/auth/register", "", credentials{Email: "dup@x.com", Password: "other"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "User exists")
}

func TestServer_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/api/auth/login", "", credentials{
		Email:    seed.TestUserEmail,
		Password: "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/events/some-event/register"},
		{http.MethodGet, "/api/events/registrations/my"},
		{http.MethodDelete, "/api/events/registrations/some-reg"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rr := s.do(p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), "No token")
		})
	}

	t.Run("garbage token", func(t *testing.T) {
		rr := s.do(http.MethodGet, "/api/events/registrations/my", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid token")
	})
}

func TestServer_PublicCatalogNeedsNoToken(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var events []model.Event
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&events))
	require.NotEmpty(t, events)

	// Event details are public too.
	rr = s.do(http.MethodGet, "/api/events/"+events[0].ID, "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), events[0].Title)
}

func TestServer_DoubleRegistration(t *testing.T) {
	s := newTestServer(t)
	token := signUp(t, s, "double@x.com", "pw123")

	events := listEvents(t, s)
	path := fmt.Sprintf("/api/events/%s/register", events[0].ID)

	rr := s.do(http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Already registered")
}

func TestServer_RegisterForUnknownEvent(t *testing.T) {
	s := newTestServer(t)
	token := signUp(t, s, "ghost@x.com", "pw123")

	rr := s.do(http.MethodPost, "/api/events/9m4e2mr0ui3e8a215n4g/register", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Event not found")
}

// A registration can only be cancelled by the account that made it.
func TestServer_CrossUserCancelForbidden(t *testing.T) {
	s := newTestServer(t)

	ownerToken := signUp(t, s, "owner@x.com", "pw123")
	intruderToken := signUp(t, s, "intruder@x.com", "pw123")

	events := listEvents(t, s)
	rr := s.do(http.MethodPost, fmt.Sprintf("/api/events/%s/register", events[0].ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var registered struct {
		RegistrationID string `json:"registrationId"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&registered))

	rr = s.do(http.MethodDelete, "/api/events/registrations/"+registered.RegistrationID, intruderToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// The owner's registration survived the attempt.
	rr = s.do(http.MethodGet, "/api/events/registrations/my", ownerToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var mine []model.RegistrationWithEvent
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&mine))
	assert.Len(t, mine, 1)
}

func TestServer_CancelTwice(t *testing.T) {
	s := newTestServer(t)
	token := signUp(t, s, "twice@x.com", "pw123")

	events := listEvents(t, s)
	rr := s.do(http.MethodPost, fmt.Sprintf("/api/events/%s/register", events[0].ID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var registered struct {
		RegistrationID string `json:"registrationId"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&registered))

	path := "/api/events/registrations/" + registered.RegistrationID
	rr = s.do(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Registration not found")
}

func TestServer_HealthAndIndex(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Event Registration System")
}

func TestServer_RequiresJWTSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := New(Config{DBPath: ":memory:"}, logger)
	assert.Error(t, err)
}

func listEvents(t *testing.T, s *Server) []model.Event {
	t.Helper()

	rr := s.do(http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var events []model.Event
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&events))
	require.NotEmpty(t, events)
	return events
}
