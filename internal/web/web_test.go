package web

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tbourn/go-minitwit/internal/repo"
)

func renderPage(t *testing.T, name string, p Page) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	w := httptest.NewRecorder()
	if err := r.Instance(name, p).Render(w); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return w.Body.String()
}

func TestGravatarURL(t *testing.T) {
	got := GravatarURL("  MyEmailAddress@example.com ", 48)
	want := "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=identicon&s=48"
	if got != want {
		t.Fatalf("GravatarURL = %q; want %q", got, want)
	}
	if !strings.HasSuffix(GravatarURL("a@b.c", 0), "&s=80") {
		t.Fatalf("non-positive size should default to 80")
	}
}

func TestFormatDatetime(t *testing.T) {
	if got := FormatDatetime(0); got != "1970-01-01 @ 00:00" {
		t.Fatalf("FormatDatetime(0) = %q", got)
	}
}

func TestMessages_Converts(t *testing.T) {
	ms := Messages([]repo.TimelineEntry{{Username: "jane doe", Email: "j@x.y", Text: "hi", PubDate: 60}})
	if len(ms) != 1 {
		t.Fatalf("len = %d", len(ms))
	}
	m := ms[0]
	if m.ProfileURL != "/jane%20doe" || m.Text != "hi" || m.PubDate != "1970-01-01 @ 00:01" {
		t.Fatalf("unexpected view row: %+v", m)
	}
	if len(Messages(nil)) != 0 {
		t.Fatalf("nil input should give empty slice")
	}
}

func TestTimeline_AnonymousPublic(t *testing.T) {
	body := renderPage(t, PageTimeline, Page{
		Title:    "Public Timeline",
		Endpoint: EndpointPublic,
		Messages: Messages([]repo.TimelineEntry{{Username: "bob", Email: "b@x.y", Text: "<script>x</script>"}}),
	})
	for _, want := range []string{"Public Timeline", "sign up", "/bob", "&lt;script&gt;"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "<script>x") {
		t.Fatalf("message text must be escaped")
	}
	if strings.Contains(body, "add_message") {
		t.Fatalf("anonymous page must not show the post form")
	}
}

func TestTimeline_ViewerProfileAndFlashes(t *testing.T) {
	body := renderPage(t, PageTimeline, Page{
		Title:    "bob's Timeline",
		Endpoint: EndpointUser,
		Viewer:   &Viewer{Username: "alice"},
		Flashes:  []string{"You are now following bob"},
		Profile:  &Profile{Username: "bob", Followed: true},
	})
	for _, want := range []string{"sign out [alice]", "You are now following bob", "/bob/unfollow", "no message so far"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}

	body = renderPage(t, PageTimeline, Page{
		Title:    "My Timeline",
		Endpoint: EndpointTimeline,
		Viewer:   &Viewer{Username: "alice"},
	})
	if !strings.Contains(body, `action="/add_message"`) {
		t.Fatalf("own timeline should show the post form")
	}
}

func TestForms_EchoErrorAndFields(t *testing.T) {
	body := renderPage(t, PageRegister, Page{
		Title: "Sign Up",
		Error: "The two passwords do not match",
		Form:  Form{Username: "carol", Email: "c@x.y"},
	})
	for _, want := range []string{"The two passwords do not match", `value="carol"`, `value="c@x.y"`, `name="password2"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("register body missing %q", want)
		}
	}

	body = renderPage(t, PageLogin, Page{Title: "Sign In", Error: "Invalid password"})
	if !strings.Contains(body, "Invalid password") {
		t.Fatalf("login body missing error")
	}
}

func TestInstance_UnknownPagePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustRenderer().Instance("nope", nil).Render(httptest.NewRecorder())
}

