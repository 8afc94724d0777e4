// Package router is the conversational entrypoint: it compiles the
// message-handling pipeline once and runs every inbound message through it,
// serialized per session.
package router

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	intentx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/intent"
	routernode "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/nodes"
	quotex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/quote"
	respondx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/respond"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

// Collaborators re-exports the dispatch-side dependency bundle so callers
// wire everything through this package.
type Collaborators = routernode.Collaborators

type Router struct {
	store      statex.Store
	classifier *intentx.Classifier
	engine     *quotex.Engine
	generator  *respondx.Generator
	collab     Collaborators

	graphRunner compose.Runnable[routernode.GraphInput, routernode.GraphOutput]

	// sessionLocks serializes messages within one session; distinct
	// sessions proceed concurrently.
	sessionLocks sync.Map

	now func() time.Time
}

func New(
	store statex.Store,
	classifier *intentx.Classifier,
	engine *quotex.Engine,
	generator *respondx.Generator,
	collab Collaborators,
) (*Router, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if classifier == nil {
		return nil, errors.New("intent classifier is required")
	}
	if engine == nil {
		return nil, errors.New("quote engine is required")
	}
	if generator == nil {
		return nil, errors.New("reply generator is required")
	}
	if err := collab.Validate(); err != nil {
		return nil, err
	}

	r := &Router{
		store:      store,
		classifier: classifier,
		engine:     engine,
		generator:  generator,
		collab:     collab,
		now:        time.Now,
	}

	graphRunner, err := r.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	r.graphRunner = graphRunner

	return r, nil
}

// WithNow replaces the clock. Intended for tests.
func (r *Router) WithNow(now func() time.Time) *Router {
	if now != nil {
		r.now = now
	}
	return r
}

// HandleMessage runs one inbound message through the pipeline. It never
// returns an error: pipeline failures become a failure-shaped Reply so the
// caller always has something to show the user.
func (r *Router) HandleMessage(ctx context.Context, sessionID, text string) contractx.Reply {
	unlock := r.lockSession(sessionID)
	defer unlock()

	out, err := r.graphRunner.Invoke(ctx, routernode.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("message pipeline failed")
		return failureReply(sessionID, err)
	}
	return out.Reply
}

func (r *Router) lockSession(sessionID string) func() {
	v, _ := r.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func failureReply(sessionID string, err error) contractx.Reply {
	fallback := "Sorry, something went wrong while handling your request. Please try again."
	switch {
	case errors.Is(err, contractx.ErrInvalidSession):
		fallback = "A session id is required before I can help."
	case errors.Is(err, contractx.ErrInvalidMessage):
		fallback = "I did not receive any message text. What would you like to do?"
	}
	return contractx.Reply{
		Success:      false,
		SessionID:    sessionID,
		Error:        err.Error(),
		FallbackText: fallback,
	}
}
