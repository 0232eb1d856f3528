// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package query drives question submission and result paging. The
// Orchestrator is the only writer of the current result, the pending
// question and the conversation Log.
package query

import (
	"context"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"dbchat/cli/internal/backend"
	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/logging"
	"dbchat/cli/internal/model"
	"dbchat/cli/internal/session"
)

// NoQuestion is reported when neither a question nor a pending one exists.
const NoQuestion = "No question to run."

// Save validation messages.
const (
	NoResultToSave = "No result to save yet."
	NoSaveKey      = "Enter a query key to save."
)

// Status classifies how a submission ended.
type Status int

const (
	// StatusNotReady means a selection was missing; nothing was sent.
	StatusNotReady Status = iota
	// StatusNoQuestion means there was no question to send.
	StatusNoQuestion
	// StatusAnswered means the result was replaced.
	StatusAnswered
	// StatusFailed means the service call failed; the result is unchanged.
	StatusFailed
	// StatusSuperseded means a newer submission started before this one
	// returned; its response was discarded.
	StatusSuperseded
	// StatusIgnored means a page request was out of range or had no result.
	StatusIgnored
)

func (s Status) String() string {
	switch s {
	case StatusNotReady:
		return "not ready"
	case StatusNoQuestion:
		return "no question"
	case StatusAnswered:
		return "answered"
	case StatusFailed:
		return "failed"
	case StatusSuperseded:
		return "superseded"
	case StatusIgnored:
		return "ignored"
	}
	return "unknown"
}

// Outcome describes a finished submission. Message holds the reason or
// error text for the non-answered statuses.
type Outcome struct {
	Status  Status
	Message string
	Result  *model.QueryResult
}

// SubmitOptions tunes one submission. Page 0 means the first page. Silent
// submissions leave the Log alone.
type SubmitOptions struct {
	Page   int
	Silent bool
}

// Config holds orchestrator settings.
type Config struct {
	// PageSize is forwarded with each request when positive.
	PageSize int
	Logger   *pterm.Logger
}

// Orchestrator runs the submit/paginate state machine over one session's
// options.
type Orchestrator struct {
	be       backend.API
	opts     *session.Options
	log      *Log
	pageSize int
	logger   *pterm.Logger

	mu       sync.Mutex
	seq      uint64
	inflight int
	pending  string
	result   *model.QueryResult
	page     int
}

// NewOrchestrator wires an orchestrator to its collaborators.
func NewOrchestrator(be backend.API, opts *session.Options, log *Log, cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Orchestrator{be: be, opts: opts, log: log, pageSize: cfg.PageSize, logger: logger}
}

// Ask submits a new question.
func (o *Orchestrator) Ask(ctx context.Context, text string) Outcome {
	return o.Submit(ctx, &text, SubmitOptions{})
}

// Submit sends question, or the pending question when question is nil.
//
// Readiness is checked before the question is resolved, so an unready
// session never changes the pending question. Only the most recent
// submission may change the result or the Log once its response arrives.
func (o *Orchestrator) Submit(ctx context.Context, question *string, so SubmitOptions) Outcome {
	v := o.opts.Snapshot()
	if reason := v.Ready(); reason != "" {
		o.assistant("Error: " + reason)
		return Outcome{Status: StatusNotReady, Message: reason}
	}

	o.mu.Lock()
	text := o.pending
	if question != nil {
		text = *question
	}
	text = strings.TrimSpace(text)
	if text == "" {
		o.mu.Unlock()
		o.assistant("Error: " + NoQuestion)
		return Outcome{Status: StatusNoQuestion, Message: NoQuestion}
	}
	o.pending = text
	o.seq++
	o.inflight++
	seq := o.seq
	if !so.Silent {
		o.log.Append(model.Message{Role: model.RoleUser, Text: text})
	}
	o.mu.Unlock()

	page := so.Page
	if page < 1 {
		page = 1
	}
	req := model.AnswerRequest{
		Question:   text,
		Provider:   v.Provider,
		Model:      v.Model,
		Connection: v.Connection,
		Page:       page,
		PageSize:   o.pageSize,
	}
	o.logger.Debug("submit", o.logger.Args("seq", seq, "page", page, "silent", so.Silent, "connection", v.Connection))

	res, err := o.be.Answer(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.inflight--
	if seq != o.seq {
		o.logger.Debug("discarding stale response", o.logger.Args("seq", seq, "latest", o.seq))
		return Outcome{Status: StatusSuperseded}
	}
	if err != nil {
		msg := ErrorMessage(err)
		o.logger.Debug("submit failed", o.logger.Args("seq", seq, "error", logging.Mask(err.Error())))
		if !so.Silent {
			o.log.Append(model.Message{Role: model.RoleAssistant, Text: "Error: " + msg})
		}
		return Outcome{Status: StatusFailed, Message: msg, Result: o.result}
	}
	if res == nil {
		res = &model.QueryResult{}
	}
	if res.Question == "" {
		res.Question = text
	}
	o.result = res
	if res.Page < 1 {
		res.Page = page
	}
	o.page = res.Page
	if !so.Silent {
		o.log.Append(model.Message{Role: model.RoleAssistant, Text: res.Answer})
	}
	return Outcome{Status: StatusAnswered, Result: res}
}

// GoToPage re-runs the pending question for target. It does nothing when no
// result exists or target lies outside 1..total pages.
func (o *Orchestrator) GoToPage(ctx context.Context, target int) Outcome {
	o.mu.Lock()
	res := o.result
	o.mu.Unlock()
	if res == nil || target < 1 || target > res.PageCount() {
		return Outcome{Status: StatusIgnored, Result: res}
	}
	return o.Submit(ctx, nil, SubmitOptions{Page: target, Silent: true})
}

func (o *Orchestrator) NextPage(ctx context.Context) Outcome { return o.GoToPage(ctx, o.Page()+1) }
func (o *Orchestrator) PrevPage(ctx context.Context) Outcome { return o.GoToPage(ctx, o.Page()-1) }

// SaveCurrent stores the current result under key. Missing result or key
// fail with a validation error before any call is made.
func (o *Orchestrator) SaveCurrent(ctx context.Context, key string) error {
	o.mu.Lock()
	res := o.result
	pending := o.pending
	o.mu.Unlock()

	if res == nil {
		return dberrors.New(dberrors.Validation, NoResultToSave)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return dberrors.New(dberrors.Validation, NoSaveKey)
	}

	question := res.Question
	if question == "" {
		question = pending
	}
	err := o.be.SaveQuery(ctx, model.SaveRequest{
		Key:      key,
		Question: question,
		SQL:      res.SQL,
		Answer:   res.Answer,
	})
	if err != nil {
		return dberrors.Wrap(dberrors.Transport, ErrorMessage(err), err)
	}
	return nil
}

// Result returns the live result or nil. Callers must not modify it.
func (o *Orchestrator) Result() *model.QueryResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Page returns the page reported by the last successful response.
func (o *Orchestrator) Page() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.page
}

// PendingQuestion returns the question page requests will re-run.
func (o *Orchestrator) PendingQuestion() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending
}

// InFlight reports whether a submission is awaiting its response.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inflight > 0
}

func (o *Orchestrator) assistant(text string) {
	o.log.Append(model.Message{Role: model.RoleAssistant, Text: text})
}
