package web

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tbourn/go-minitwit/internal/repo"
)

// Timeline kinds, used by the template to decide what to show.
const (
	EndpointPublic   = "public"
	EndpointTimeline = "timeline"
	EndpointUser     = "user"
)

const (
	avatarSize = 48
	dateLayout = "2006-01-02 @ 15:04"
)

// Viewer is the signed-in user as the layout sees it.
type Viewer struct {
	Username string
	Email    string
}

// Profile describes the user whose timeline is shown.
type Profile struct {
	Username string
	Followed bool
	IsSelf   bool
}

// Message is one rendered timeline row.
type Message struct {
	Username   string
	ProfileURL string
	Gravatar   string
	Text       string
	PubDate    string
}

// Form echoes submitted fields back into a re-rendered form.
type Form struct {
	Username string
	Email    string
}

// Page is the data every template receives.
type Page struct {
	Title    string
	Endpoint string
	Viewer   *Viewer
	Flashes  []string
	Error    string
	Form     Form
	Messages []Message
	Profile  *Profile
}

// Messages converts timeline rows into view rows.
func Messages(entries []repo.TimelineEntry) []Message {
	out := make([]Message, 0, len(entries))
	for _, e := range entries {
		out = append(out, Message{
			Username:   e.Username,
			ProfileURL: "/" + url.PathEscape(e.Username),
			Gravatar:   GravatarURL(e.Email, avatarSize),
			Text:       e.Text,
			PubDate:    FormatDatetime(e.PubDate),
		})
	}
	return out
}

// GravatarURL returns the identicon avatar URL for email.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = 80
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) +
		"?d=identicon&s=" + strconv.Itoa(size)
}

// FormatDatetime renders a unix timestamp in UTC.
func FormatDatetime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(dateLayout)
}
