package celcat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "tok-123"
	testUser     = "e-1234"
	testPassword = "hunter2"
	sessionName  = "celcat_session"
)

const loginPage = `<html><body><form action="/calendar/LdapLogin/Logon" method="post">
<input name="__RequestVerificationToken" type="hidden" value="` + testToken + `" />
<input name="Name" /><input name="Password" type="password" />
</form></body></html>`

// fakeCelcat mimics the parts of the Celcat web application used by the client
type fakeCelcat struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	sessions map[string]bool
	handlers map[string]http.HandlerFunc

	logons atomic.Int32
	noForm bool
}

func newFakeCelcat(t *testing.T) *fakeCelcat {
	t.Helper()
	f := &fakeCelcat{t: t, sessions: map[string]bool{}, handlers: map[string]http.HandlerFunc{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /calendar/LdapLogin", func(w http.ResponseWriter, _ *http.Request) {
		if f.noForm {
			_, _ = fmt.Fprint(w, "<html><body>maintenance</body></html>")
			return
		}
		_, _ = fmt.Fprint(w, loginPage)
	})
	mux.HandleFunc("POST /calendar/LdapLogin/Logon", func(w http.ResponseWriter, r *http.Request) {
		f.logons.Add(1)
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("__RequestVerificationToken") != testToken ||
			r.PostForm.Get("Name") != testUser || r.PostForm.Get("Password") != testPassword {
			http.Redirect(w, r, "/calendar/LdapLogin", http.StatusFound)
			return
		}
		id := fmt.Sprintf("s%d", f.logons.Load())
		f.mu.Lock()
		f.sessions[id] = true
		f.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: sessionName, Value: id, Path: "/"})
		http.Redirect(w, r, "/calendar/Home", http.StatusFound)
	})
	mux.HandleFunc("GET /calendar/Home", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "<html>home</html>")
	})
	mux.HandleFunc("/calendar/Home/{endpoint}", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionName)
		f.mu.Lock()
		valid := err == nil && f.sessions[cookie.Value]
		h := f.handlers[r.PathValue("endpoint")]
		f.mu.Unlock()
		if !valid {
			http.Redirect(w, r, "/calendar/LdapLogin?ReturnUrl=%2Fcalendar", http.StatusFound)
			return
		}
		if h == nil {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCelcat) baseURL() string {
	return f.server.URL + "/calendar"
}

func (f *fakeCelcat) handle(endpoint string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[endpoint] = h
}

func (f *fakeCelcat) expireSessions() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = map[string]bool{}
}

func newLoggedInClient(t *testing.T, f *fakeCelcat) *Client {
	t.Helper()
	ctx := context.Background()
	c, err := New(ctx, f.baseURL(), WithTimeout(5*time.Second))
	require.NoError(t, err)
	require.NoError(t, c.Login(ctx, testUser, testPassword))
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("fetches_token", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		c, err := New(context.Background(), f.baseURL())
		require.NoError(t, err)
		assert.Equal(t, testToken, c.token)
	})

	t.Run("missing_token", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		f.noForm = true
		_, err := New(context.Background(), f.baseURL())
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("server_error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		_, err := New(context.Background(), srv.URL)
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		assert.True(t, IsRetryable(err))
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		newLoggedInClient(t, f)
		assert.Equal(t, int32(1), f.logons.Load())
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		c, err := New(context.Background(), f.baseURL())
		require.NoError(t, err)

		err = c.Login(context.Background(), testUser, "wrong")
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		assert.False(t, IsRetryable(err))
	})

	t.Run("fetch_before_login", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		c, err := New(context.Background(), f.baseURL())
		require.NoError(t, err)

		_, err = c.FetchEvent(context.Background(), "x")
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestFetchCalendar(t *testing.T) {
	t.Parallel()
	f := newFakeCelcat(t)
	f.handle("GetCalendarData", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "2021-09-01T00:00:00", r.PostForm.Get("start"))
		assert.Equal(t, "2022-09-01T00:00:00", r.PostForm.Get("end"))
		assert.Equal(t, "104", r.PostForm.Get("resType"))
		assert.Equal(t, "month", r.PostForm.Get("calView"))
		assert.Equal(t, "21900000", r.PostForm.Get("federationIds"))
		assert.Equal(t, "3", r.PostForm.Get("colourScheme"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `[
			{"id":"-1347128091:-662573064:1:42367:4","start":"2021-09-22T14:30:00","end":"2021-09-22T17:45:00",
			 "allDay":false,"description":"Some description","backgroundColor":"#FF0000","textColor":"#ffffff",
			 "department":"1 : UFR DROIT","faculty":null,"eventCategory":"CM","sites":["CHENES"],
			 "modules":["1BAIJU1M"],"registerStatus":2,"studentMark":0,"custom1":null},
			{"id":"c2","start":"2021-09-23T08:00:00","end":null,"allDay":true,"description":"",
			 "backgroundColor":"","textColor":"","department":null,"faculty":null,"eventCategory":null,
			 "sites":null,"modules":null,"registerStatus":0,"studentMark":0}
		]`)
	})
	c := newLoggedInClient(t, f)

	courses, err := c.FetchCalendar(context.Background(), CalendarRequest{
		Start:         time.Date(2021, time.September, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC),
		ResourceType:  ResourceStudent,
		FederationIDs: "21900000",
	})
	require.NoError(t, err)
	require.Len(t, courses, 2)

	first := courses[0]
	assert.Equal(t, "-1347128091:-662573064:1:42367:4", first.ID)
	assert.Equal(t, time.Date(2021, time.September, 22, 14, 30, 0, 0, time.UTC), first.Start.Time)
	require.NotNil(t, first.EndTime())
	assert.Equal(t, time.Date(2021, time.September, 22, 17, 45, 0, 0, time.UTC), *first.EndTime())
	assert.Equal(t, []string{"CHENES"}, first.Sites)
	assert.Equal(t, []string{"1BAIJU1M"}, first.Modules)
	require.NotNil(t, first.EventCategory)
	assert.Equal(t, "CM", *first.EventCategory)
	assert.Nil(t, first.Faculty)

	assert.Nil(t, courses[1].EndTime())
	assert.True(t, courses[1].AllDay)
}

func TestFetchEvent(t *testing.T) {
	t.Parallel()
	f := newFakeCelcat(t)
	f.handle("GetSideBarEvent", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "c1", r.PostForm.Get("eventId"))
		_, _ = fmt.Fprint(w, `{"federationId":null,"entityType":0,"elements":[
			{"label":"Time","content":"08:00-10:00","federationId":null,"entityType":0,"assignmentContext":null,
			 "containsHyperlinks":false,"isNotes":false,"isStudentSpecific":false},
			{"label":"Catégorie","content":"TD","federationId":null,"entityType":0,"assignmentContext":null,
			 "containsHyperlinks":false,"isNotes":false,"isStudentSpecific":false},
			{"label":"Matière","content":"Algorithmique","federationId":"ALGO1","entityType":100,
			 "assignmentContext":"a","containsHyperlinks":false,"isNotes":false,"isStudentSpecific":false},
			{"label":"Salle","content":"A101","federationId":"A101","entityType":102,"assignmentContext":null,
			 "containsHyperlinks":false,"isNotes":false,"isStudentSpecific":false},
			{"label":"Enseignant","content":"DUPONT Jean","federationId":"42","entityType":101,
			 "assignmentContext":null,"containsHyperlinks":false,"isNotes":false,"isStudentSpecific":false},
			{"label":"Remarques","content":"ignored","federationId":null,"entityType":0,"assignmentContext":null,
			 "containsHyperlinks":true,"isNotes":true,"isStudentSpecific":false},
			{"label":"Name","content":"Partiel","federationId":null,"entityType":0,"assignmentContext":null,
			 "containsHyperlinks":false,"isNotes":false,"isStudentSpecific":false}
		]}`)
	})
	c := newLoggedInClient(t, f)

	event, err := c.FetchEvent(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, event.Elements, 7)
	assert.Equal(t, LabelUnknown, event.Elements[5].Label)

	rt, ok := event.Elements[2].EntityType.Resource()
	assert.True(t, ok)
	assert.Equal(t, ResourceModule, rt)

	d := event.Details()
	assert.Equal(t, "TD", *d.Category)
	assert.Equal(t, "Algorithmique", *d.Module)
	assert.Equal(t, "A101", *d.Room)
	assert.Equal(t, "DUPONT Jean", *d.Teacher)
	assert.Equal(t, "Partiel", *d.Description)
}

func TestFetchEventErrors(t *testing.T) {
	t.Parallel()

	t.Run("server_error_is_retryable", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		f.handle("GetSideBarEvent", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		c := newLoggedInClient(t, f)

		_, err := c.FetchEvent(context.Background(), "c1")
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
		assert.True(t, IsRetryable(err))
	})

	t.Run("malformed_body_is_permanent", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		f.handle("GetSideBarEvent", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, `{"elements":[{"label":"Salle","entityType":7}]}`)
		})
		c := newLoggedInClient(t, f)

		_, err := c.FetchEvent(context.Background(), "c1")
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.False(t, IsRetryable(err))
	})

	t.Run("cancelled_context", func(t *testing.T) {
		t.Parallel()
		f := newFakeCelcat(t)
		c := newLoggedInClient(t, f)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.FetchEvent(ctx, "c1")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, IsRetryable(err))
	})
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()
	f := newFakeCelcat(t)
	f.handle("GetSideBarEvent", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"federationId":null,"entityType":0,"elements":[]}`)
	})
	c := newLoggedInClient(t, f)

	f.expireSessions()

	_, err := c.FetchEvent(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, int32(2), f.logons.Load())

	event, err := c.FetchEvent(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, event.Elements)
}

func TestListResources(t *testing.T) {
	t.Parallel()
	f := newFakeCelcat(t)
	f.handle("ReadResourceListItems", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "false", q.Get("myResources"))
		assert.Equal(t, "__", q.Get("searchTerm"))
		assert.Equal(t, "1000000", q.Get("pageSize"))
		assert.Equal(t, "1", q.Get("pageNumber"))
		assert.Equal(t, "104", q.Get("resType"))
		assert.NotEmpty(t, q.Get("_"))
		_, _ = fmt.Fprint(w, `{"total":2,"results":[
			{"id":"21900001","text":"DUPONT Jean Pierre - 21900001","dept":"INFO"},
			{"id":"21900002","text":"MARTIN Anne - 21900002","dept":null}
		]}`)
	})
	c := newLoggedInClient(t, f)

	list, err := c.ListResources(context.Background(), ResourceListRequest{
		SearchTerm:   "__",
		PageSize:     1000000,
		PageNumber:   1,
		ResourceType: ResourceStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "INFO", *list.Results[0].Department)
	assert.Nil(t, list.Results[1].Department)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "network", err: errors.New("connection reset by peer"), want: true},
		{name: "canceled", err: fmt.Errorf("wrapped: %w", context.Canceled), want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "session_expired", err: ErrSessionExpired, want: true},
		{name: "no_token", err: ErrNoToken, want: false},
		{name: "decode", err: &DecodeError{Endpoint: eventPath, Err: errors.New("bad")}, want: false},
		{name: "http_404", err: &HTTPError{StatusCode: http.StatusNotFound}, want: false},
		{name: "http_408", err: &HTTPError{StatusCode: http.StatusRequestTimeout}, want: true},
		{name: "http_429", err: &HTTPError{StatusCode: http.StatusTooManyRequests}, want: true},
		{name: "http_503", err: fmt.Errorf("x: %w", &HTTPError{StatusCode: http.StatusServiceUnavailable}), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
