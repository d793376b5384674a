// Page-flow handlers.
//
// These render the HTML timelines and forms, drive the cookie session
// (login, logout, flashes) and perform the session-gated mutations:
// follow, unfollow and posting a message. Routes that mutate state sit
// behind middleware.RequireViewer, so anonymous callers get 401 before
// reaching them.
package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-minitwit/internal/http/middleware"
	"github.com/tbourn/go-minitwit/internal/observability"
	"github.com/tbourn/go-minitwit/internal/services"
	"github.com/tbourn/go-minitwit/internal/web"
)

// Flash texts.
const (
	flashLoggedIn         = "You were logged in"
	flashLoggedOut        = "You were logged out"
	flashRegistered       = "You were successfully registered and can login now"
	flashRecorded         = "Your message was recorded"
	flashFollowing        = "You are now following "
	flashUnfollowed       = "You are no longer following "
	flashAlreadyFollowing = "You are already following "
	flashNotFollowing     = "You are not following "
)

// render fills the layout fields and writes page. Flashes are consumed
// here, before the body is written, so the session cookie update is sent.
func (h *Handlers) render(c *gin.Context, status int, page string, p web.Page) {
	if v := middleware.ViewerFrom(c); v != nil {
		p.Viewer = &web.Viewer{Username: v.Username, Email: v.Email}
	}
	p.Flashes = middleware.Flashes(c)
	c.HTML(status, page, p)
}

// flash queues msg for the next rendered page.
func flash(c *gin.Context, msg string) {
	middleware.AddFlash(c, msg)
}

// redirect saves the staged session changes and redirects to location.
func redirect(c *gin.Context, location string) {
	if err := middleware.SaveSession(c); err != nil {
		pageFail(c, http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusFound, location)
}

func userPath(username string) string {
	return "/" + url.PathEscape(username)
}

// Timeline shows the viewer's own timeline, or redirects anonymous
// visitors to the public one.
func (h *Handlers) Timeline(c *gin.Context) {
	v := middleware.ViewerFrom(c)
	if v == nil {
		redirect(c, "/public")
		return
	}
	entries, err := h.svc.Timelines.Own(c.Request.Context(), v.UserID, h.opts.PerPage)
	if err != nil {
		pageFail(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, http.StatusOK, web.PageTimeline, web.Page{
		Title:    "My Timeline",
		Endpoint: web.EndpointTimeline,
		Messages: web.Messages(entries),
	})
}

// PublicTimeline shows everyone's latest messages.
func (h *Handlers) PublicTimeline(c *gin.Context) {
	entries, err := h.svc.Timelines.Public(c.Request.Context(), h.opts.PerPage)
	if err != nil {
		pageFail(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, http.StatusOK, web.PageTimeline, web.Page{
		Title:    "Public Timeline",
		Endpoint: web.EndpointPublic,
		Messages: web.Messages(entries),
	})
}

// UserTimeline shows one user's messages and, for a signed-in viewer,
// whether the viewer follows them.
func (h *Handlers) UserTimeline(c *gin.Context) {
	ctx := c.Request.Context()
	profile, entries, err := h.svc.Timelines.User(ctx, c.Param("username"), h.opts.PerPage)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			pageFail(c, http.StatusNotFound, err)
			return
		}
		pageFail(c, http.StatusInternalServerError, err)
		return
	}

	p := web.Page{
		Title:    profile.Username + "'s Timeline",
		Endpoint: web.EndpointUser,
		Messages: web.Messages(entries),
	}
	if v := middleware.ViewerFrom(c); v != nil {
		followed, err := h.svc.Social.IsFollowing(ctx, v.UserID, profile.UserID)
		if err != nil {
			pageFail(c, http.StatusInternalServerError, err)
			return
		}
		p.Profile = &web.Profile{
			Username: profile.Username,
			Followed: followed,
			IsSelf:   v.UserID == profile.UserID,
		}
	}
	h.render(c, http.StatusOK, web.PageTimeline, p)
}

// FollowUser makes the viewer follow :username.
func (h *Handlers) FollowUser(c *gin.Context) {
	v := middleware.ViewerFrom(c)
	target := c.Param("username")
	created, err := h.svc.Social.Follow(c.Request.Context(), v.UserID, target)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			pageFail(c, http.StatusNotFound, err)
			return
		}
		pageFail(c, http.StatusInternalServerError, err)
		return
	}
	observability.FollowActions.WithLabelValues(observability.FlowPage, observability.ActionFollow).Inc()
	if created {
		flash(c, flashFollowing+target)
	} else {
		flash(c, flashAlreadyFollowing+target)
	}
	redirect(c, userPath(target))
}

// UnfollowUser removes the viewer's edge to :username, if any.
func (h *Handlers) UnfollowUser(c *gin.Context) {
	v := middleware.ViewerFrom(c)
	target := c.Param("username")
	removed, err := h.svc.Social.Unfollow(c.Request.Context(), v.UserID, target)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			pageFail(c, http.StatusNotFound, err)
			return
		}
		pageFail(c, http.StatusInternalServerError, err)
		return
	}
	observability.FollowActions.WithLabelValues(observability.FlowPage, observability.ActionUnfollow).Inc()
	if removed {
		flash(c, flashUnfollowed+target)
	} else {
		flash(c, flashNotFollowing+target)
	}
	redirect(c, userPath(target))
}

// AddMessage posts the form's text as the viewer. Empty text is dropped
// without a message.
func (h *Handlers) AddMessage(c *gin.Context) {
	v := middleware.ViewerFrom(c)
	_, err := h.svc.Messages.Post(c.Request.Context(), v.UserID, c.PostForm("text"))
	switch {
	case err == nil:
		observability.MessagesPosted.WithLabelValues(observability.FlowPage).Inc()
		flash(c, flashRecorded)
	case errors.Is(err, services.ErrEmptyMessage):
	default:
		pageFail(c, http.StatusInternalServerError, err)
		return
	}
	redirect(c, "/")
}

// LoginForm shows the sign-in form.
func (h *Handlers) LoginForm(c *gin.Context) {
	if middleware.ViewerFrom(c) != nil {
		redirect(c, "/")
		return
	}
	h.render(c, http.StatusOK, web.PageLogin, web.Page{Title: "Sign In"})
}

// Login checks the submitted credentials and signs the session in.
func (h *Handlers) Login(c *gin.Context) {
	if middleware.ViewerFrom(c) != nil {
		redirect(c, "/")
		return
	}
	username := c.PostForm("username")
	password := c.PostForm("password")
	again := func(status int, msg, reason string) {
		observability.LoginFailure.WithLabelValues(reason).Inc()
		h.render(c, status, web.PageLogin, web.Page{
			Title: "Sign In",
			Error: msg,
			Form:  web.Form{Username: username},
		})
	}

	switch {
	case username == "":
		again(http.StatusBadRequest, services.ErrUsernameRequired.Msg, observability.ReasonMissingFields)
		return
	case password == "":
		again(http.StatusBadRequest, services.ErrPasswordRequired.Msg, observability.ReasonMissingFields)
		return
	}

	u, err := h.svc.Accounts.Authenticate(c.Request.Context(), username, password)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidUsername):
		again(http.StatusUnauthorized, "Invalid username", observability.ReasonUnknownUser)
		return
	case errors.Is(err, services.ErrInvalidPassword):
		again(http.StatusUnauthorized, "Invalid password", observability.ReasonBadPassword)
		return
	default:
		pageFail(c, http.StatusInternalServerError, err)
		return
	}

	middleware.SignIn(c, u.UserID)
	observability.LoginSuccess.Inc()
	flash(c, flashLoggedIn)
	redirect(c, "/")
}

// RegisterForm shows the sign-up form.
func (h *Handlers) RegisterForm(c *gin.Context) {
	if middleware.ViewerFrom(c) != nil {
		redirect(c, "/")
		return
	}
	h.render(c, http.StatusOK, web.PageRegister, web.Page{Title: "Sign Up"})
}

// Register creates an account from the sign-up form.
func (h *Handlers) Register(c *gin.Context) {
	if middleware.ViewerFrom(c) != nil {
		redirect(c, "/")
		return
	}
	confirm := c.PostForm("password2")
	r := services.Registration{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Confirm:  &confirm,
	}
	if _, err := h.svc.Accounts.Register(c.Request.Context(), r); err != nil {
		if errors.Is(err, services.ErrValidation) {
			h.render(c, http.StatusBadRequest, web.PageRegister, web.Page{
				Title: "Sign Up",
				Error: err.Error(),
				Form:  web.Form{Username: r.Username, Email: r.Email},
			})
			return
		}
		pageFail(c, http.StatusInternalServerError, err)
		return
	}
	observability.RegisterSuccess.WithLabelValues(observability.FlowPage).Inc()
	flash(c, flashRegistered)
	redirect(c, "/login")
}

// Logout clears the session. Logging out twice is harmless.
func (h *Handlers) Logout(c *gin.Context) {
	middleware.SignOut(c)
	flash(c, flashLoggedOut)
	redirect(c, "/public")
}
