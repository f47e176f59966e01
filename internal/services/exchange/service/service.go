// Package service runs exchange operations against a Store.
//
// Every operation loads the document, reconciles it with the roster, applies
// its change and saves, all while holding one process-wide lock. Concurrent
// requests therefore never draw the same receiver twice.
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/intercambio/internal/platform/errors"
	"github.com/louisbranch/intercambio/internal/platform/otel"
	"github.com/louisbranch/intercambio/internal/random"
	"github.com/louisbranch/intercambio/internal/services/exchange/domain"
	"github.com/louisbranch/intercambio/internal/services/exchange/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Result is the outcome of a successful Resolve.
type Result struct {
	Giver    string
	Receiver string
	// Created is true when this call made the assignment.
	Created bool
}

// RepairRequest asks for a manual giver → receiver assignment.
type RepairRequest struct {
	Giver    string
	Receiver string
	// Force allows a receiver that is already assigned to another giver.
	Force bool
}

// Service coordinates the roster, the store and the random source.
type Service struct {
	mu     sync.Mutex
	store  storage.Store
	roster domain.Roster
	src    random.Source
	tracer trace.Tracer
}

// New builds a Service. The roster is validated; a nil src is rejected.
func New(store storage.Store, roster domain.Roster, src random.Source) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if src == nil {
		return nil, errors.New("random source is required")
	}
	validated, err := domain.NewRoster(roster)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:  store,
		roster: validated,
		src:    src,
		tracer: otel.Tracer(),
	}, nil
}

// Roster returns the canonical participant list.
func (s *Service) Roster() domain.Roster {
	return domain.Roster(s.roster.Names())
}

// Load returns the current document, creating or reconciling it first.
func (s *Service) Load(ctx context.Context) (doc domain.Document, err error) {
	ctx, span := s.tracer.Start(ctx, "exchange.Load")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Resolve returns giver's receiver, drawing and saving a new one if needed.
func (s *Service) Resolve(ctx context.Context, giver string) (result Result, err error) {
	ctx, span := s.tracer.Start(ctx, "exchange.Resolve")
	defer func() { endSpan(span, err) }()

	giver = strings.TrimSpace(giver)

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return Result{}, err
	}
	receiver, created, err := domain.Resolve(&doc, s.roster, giver, s.src)
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(attribute.Bool("exchange.created", created))
	if created {
		if err := s.saveLocked(ctx, doc); err != nil {
			return Result{}, err
		}
		log.Printf("assigned a receiver to %s (%d of %d)", giver, len(doc.Assignments), len(s.roster))
	}
	return Result{Giver: giver, Receiver: receiver, Created: created}, nil
}

// Report returns the diagnostic views for the current document.
func (s *Service) Report(ctx context.Context) (report domain.Report, err error) {
	ctx, span := s.tracer.Start(ctx, "exchange.Report")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.BuildReport(doc), nil
}

// Repair records a manual assignment. It is only reachable from the
// maintenance command.
func (s *Service) Repair(ctx context.Context, req RepairRequest) (err error) {
	ctx, span := s.tracer.Start(ctx, "exchange.Repair")
	defer func() { endSpan(span, err) }()

	req.Giver = strings.TrimSpace(req.Giver)
	req.Receiver = strings.TrimSpace(req.Receiver)

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := domain.Repair(&doc, s.roster, req.Giver, req.Receiver, req.Force); err != nil {
		return err
	}
	if err := s.saveLocked(ctx, doc); err != nil {
		return err
	}
	log.Printf("repair: assigned %s -> %s (force=%t)", req.Giver, req.Receiver, req.Force)
	return nil
}

func (s *Service) loadLocked(ctx context.Context) (domain.Document, error) {
	doc, found, err := s.store.Load(ctx)
	if err != nil {
		return domain.Document{}, apperrors.Wrap(apperrors.CodeStorageFailure, "load exchange state", err)
	}
	if !found {
		doc = domain.NewDocument(s.roster)
		if err := s.saveLocked(ctx, doc); err != nil {
			return domain.Document{}, err
		}
		log.Printf("initialized exchange state with %d participants", len(s.roster))
		return doc, nil
	}

	reconciled, removed, changed := domain.Reconcile(doc, s.roster)
	if !changed {
		return reconciled, nil
	}
	if err := s.saveLocked(ctx, reconciled); err != nil {
		return domain.Document{}, err
	}
	for _, pair := range removed {
		log.Printf("reconcile: dropped assignment %s -> %s", pair.Giver, pair.Receiver)
	}
	log.Printf("reconcile: participant list updated to %d names", len(s.roster))
	return reconciled, nil
}

func (s *Service) saveLocked(ctx context.Context, doc domain.Document) error {
	if err := s.store.Save(ctx, doc); err != nil {
		return apperrors.Wrap(apperrors.CodeStorageFailure, "save exchange state", err)
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.SetAttributes(attribute.String("exchange.error_code", string(apperrors.GetCode(err))))
		if !apperrors.GetCode(err).UserFacing() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
