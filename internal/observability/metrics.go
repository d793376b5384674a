package observability

import "github.com/prometheus/client_golang/prometheus"

// Flow label values.
const (
	FlowPage = "page"
	FlowAPI  = "api"
)

// Follow action label values.
const (
	ActionFollow   = "follow"
	ActionUnfollow = "unfollow"
)

// Login failure reasons.
const (
	ReasonUnknownUser   = "unknown_user"
	ReasonBadPassword   = "bad_password"
	ReasonMissingFields = "missing_fields"
)

// Domain counters exported on /metrics next to the HTTP collectors.
var (
	LoginSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "minitwit_login_success_total",
		Help: "Successful page logins.",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minitwit_login_failure_total",
		Help: "Rejected page logins by reason.",
	}, []string{"reason"})

	RegisterSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minitwit_register_success_total",
		Help: "Registered users by flow.",
	}, []string{"flow"})

	MessagesPosted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minitwit_messages_posted_total",
		Help: "Stored messages by flow.",
	}, []string{"flow"})

	FollowActions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minitwit_follow_actions_total",
		Help: "Follow and unfollow requests that changed or confirmed an edge, by flow.",
	}, []string{"flow", "action"})
)

func init() {
	prometheus.MustRegister(LoginSuccess, LoginFailure, RegisterSuccess, MessagesPosted, FollowActions)
}
