// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package triage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/triage/core"
)

// Ticket is one classified submission within a session.
type Ticket struct {
	Text        string
	Outcome     *core.ClassificationOutcome
	SubmittedAt time.Time
}

// Session collects the tickets submitted during one user interaction.
// Sessions are created at interaction start and dropped at the end; they
// are never shared across users or processes. Safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	tickets []Ticket
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// SubmitTicket classifies text and records the result in the session.
func (e *Engine) SubmitTicket(ctx context.Context, session *Session, text string) *core.ClassificationOutcome {
	outcome := e.Classify(ctx, text)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.tickets = append(session.tickets, Ticket{
		Text:        text,
		Outcome:     outcome,
		SubmittedAt: time.Now().UTC(),
	})
	return outcome
}

// Tickets returns the submitted tickets in submission order.
func (s *Session) Tickets() []Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// TicketsByCategory groups submitted tickets by their assigned category.
func (s *Session) TicketsByCategory() map[string][]Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	grouped := make(map[string][]Ticket)
	for _, ticket := range s.tickets {
		grouped[ticket.Outcome.Category] = append(grouped[ticket.Outcome.Category], ticket)
	}
	return grouped
}

// Clear drops all recorded tickets, e.g. at session end.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = nil
}
