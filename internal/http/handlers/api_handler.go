// Simulator API handlers.
//
// Every route here sits behind middleware.RecordLatest and
// middleware.RequireSimulator (except GET /latest, which is only recorded).
// Bodies are JSON; errors use the ErrorResponse envelope.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-minitwit/internal/domain"
	"github.com/tbourn/go-minitwit/internal/observability"
	"github.com/tbourn/go-minitwit/internal/repo"
	"github.com/tbourn/go-minitwit/internal/services"
	"github.com/tbourn/go-minitwit/internal/utils"
)

//
// DTOs
//

// LatestResponse reports the latest recorded simulator command.
type LatestResponse struct {
	// -1 until a command has been recorded
	Latest int64 `json:"latest" example:"42"`
}

// RegisterRequest is the simulator's registration payload.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Pwd      string `json:"pwd" example:"secret"`
}

// MessageDTO is one message as the simulator sees it.
type MessageDTO struct {
	Content string `json:"content" example:"Hello, world!"`
	PubDate int64  `json:"pub_date" example:"1700000000"`
	User    string `json:"user" example:"alice"`
}

// PostMessageRequest carries the text of a new message.
type PostMessageRequest struct {
	Content string `json:"content" example:"Hello, world!"`
}

// FollowRequest names one user to follow or unfollow. The key that is
// present decides the action; "follow" wins when both are sent.
type FollowRequest struct {
	Follow   *string `json:"follow,omitempty" example:"bob"`
	Unfollow *string `json:"unfollow,omitempty" example:"carol"`
}

// FollowsResponse lists followed usernames.
type FollowsResponse struct {
	Follows []string `json:"follows"`
}

//
// Helpers
//

// apiLimit resolves the "no" query parameter.
func (h *Handlers) apiLimit(c *gin.Context) int {
	return utils.Limit(c.Query("no"), h.opts.APIDefaultLimit, h.opts.APIMaxLimit)
}

func toMessageDTOs(entries []repo.TimelineEntry) []MessageDTO {
	out := make([]MessageDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, MessageDTO{Content: e.Text, PubDate: e.PubDate, User: e.Username})
	}
	return out
}

// apiUser resolves the :username path parameter, writing 404/500 on failure.
func (h *Handlers) apiUser(c *gin.Context) (*domain.User, bool) {
	u, err := h.svc.Accounts.UserByUsername(c.Request.Context(), c.Param("username"))
	switch {
	case err == nil:
		return u, true
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, msgUserNotFound, nil)
	default:
		fail(c, http.StatusInternalServerError, msgInternal, err)
	}
	return nil, false
}

//
// Handlers
//

// GetLatest godoc
// @ID          getLatest
// @Summary     Latest processed simulator command
// @Tags        Simulator
// @Produce     json
// @Success     200  {object}  handlers.LatestResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /latest [get]
func (h *Handlers) GetLatest(c *gin.Context) {
	v, err := h.svc.Latest.Read(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	ok(c, http.StatusOK, LatestResponse{Latest: v})
}

// APIRegister godoc
// @ID          apiRegister
// @Summary     Register a user
// @Tags        Simulator
// @Accept      json
// @Produce     json
// @Security    SimulatorAuth
// @Param       latest  query  int                       false  "Command sequence number"
// @Param       body    body   handlers.RegisterRequest  true   "New user"
// @Success     204
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /register [post]
func (h *Handlers) APIRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgBadBody, nil)
		return
	}
	_, err := h.svc.Accounts.Register(c.Request.Context(), services.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Pwd,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			fail(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		fail(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	observability.RegisterSuccess.WithLabelValues(observability.FlowAPI).Inc()
	noContent(c)
}

// ListMessages godoc
// @ID          listMessages
// @Summary     Public timeline
// @Tags        Simulator
// @Produce     json
// @Security    SimulatorAuth
// @Param       latest  query  int  false  "Command sequence number"
// @Param       no      query  int  false  "Maximum number of messages"  default(100)
// @Success     200  {array}   handlers.MessageDTO
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /msgs [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	entries, err := h.svc.Timelines.Public(c.Request.Context(), h.apiLimit(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	ok(c, http.StatusOK, toMessageDTOs(entries))
}

// ListUserMessages godoc
// @ID          listUserMessages
// @Summary     Messages of one user
// @Tags        Simulator
// @Produce     json
// @Security    SimulatorAuth
// @Param       username  path   string  true   "Author"
// @Param       latest    query  int     false  "Command sequence number"
// @Param       no        query  int     false  "Maximum number of messages"  default(100)
// @Success     200  {array}   handlers.MessageDTO
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /msgs/{username} [get]
func (h *Handlers) ListUserMessages(c *gin.Context) {
	_, entries, err := h.svc.Timelines.User(c.Request.Context(), c.Param("username"), h.apiLimit(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, msgUserNotFound, nil)
			return
		}
		fail(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	ok(c, http.StatusOK, toMessageDTOs(entries))
}

// PostUserMessage godoc
// @ID          postUserMessage
// @Summary     Post a message as a user
// @Tags        Simulator
// @Accept      json
// @Security    SimulatorAuth
// @Param       username  path   string                       true   "Author"
// @Param       latest    query  int                          false  "Command sequence number"
// @Param       body      body   handlers.PostMessageRequest  true   "Message"
// @Success     204
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /msgs/{username} [post]
func (h *Handlers) PostUserMessage(c *gin.Context) {
	u, found := h.apiUser(c)
	if !found {
		return
	}
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgBadBody, nil)
		return
	}
	if _, err := h.svc.Messages.Post(c.Request.Context(), u.UserID, req.Content); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			fail(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, msgUserNotFound, nil)
		default:
			fail(c, http.StatusInternalServerError, msgInternal, err)
		}
		return
	}
	observability.MessagesPosted.WithLabelValues(observability.FlowAPI).Inc()
	noContent(c)
}

// ListFollows godoc
// @ID          listFollows
// @Summary     Users followed by a user
// @Tags        Simulator
// @Produce     json
// @Security    SimulatorAuth
// @Param       username  path   string  true   "Follower"
// @Param       latest    query  int     false  "Command sequence number"
// @Param       no        query  int     false  "Maximum number of users"  default(100)
// @Success     200  {object}  handlers.FollowsResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /fllws/{username} [get]
func (h *Handlers) ListFollows(c *gin.Context) {
	u, found := h.apiUser(c)
	if !found {
		return
	}
	names, err := h.svc.Social.Follows(c.Request.Context(), u.UserID, h.apiLimit(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	ok(c, http.StatusOK, FollowsResponse{Follows: names})
}

// ChangeFollow godoc
// @ID          changeFollow
// @Summary     Follow or unfollow a user
// @Tags        Simulator
// @Accept      json
// @Security    SimulatorAuth
// @Param       username  path   string                  true   "Follower"
// @Param       latest    query  int                     false  "Command sequence number"
// @Param       body      body   handlers.FollowRequest  true   "Target"
// @Success     204
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /fllws/{username} [post]
func (h *Handlers) ChangeFollow(c *gin.Context) {
	u, found := h.apiUser(c)
	if !found {
		return
	}
	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgBadBody, nil)
		return
	}

	ctx := c.Request.Context()
	var (
		action string
		err    error
	)
	switch {
	case req.Follow != nil:
		action = observability.ActionFollow
		_, err = h.svc.Social.Follow(ctx, u.UserID, *req.Follow)
	case req.Unfollow != nil:
		action = observability.ActionUnfollow
		_, err = h.svc.Social.Unfollow(ctx, u.UserID, *req.Unfollow)
	default:
		fail(c, http.StatusBadRequest, msgFollowRequired, nil)
		return
	}
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, msgUserNotFound, nil)
			return
		}
		fail(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	observability.FollowActions.WithLabelValues(observability.FlowAPI, action).Inc()
	noContent(c)
}
