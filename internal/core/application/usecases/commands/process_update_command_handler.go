package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/domain/model/update"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// ProcessUpdateCommandHandler applies one update record to the registry.
//
// Processing order:
//  1. reject kinds without a handler, before touching the registry
//  2. for "created" on an unknown id, create the shipment implicitly
//     (variant from the payload, STANDARD by default; createdAt is the event timestamp)
//  3. look the shipment up, failing with errs.ErrObjectNotFound
//  4. dispatch the update atomically
//  5. record the update in the journal
//  6. publish the resulting snapshot to subscribers
//
// Journal failures are logged and do not fail the update: the in-memory
// state has already changed and subscribers must still see it.
type ProcessUpdateCommandHandler struct {
	registry   ports.ShipmentRegistry
	dispatcher services.UpdateDispatcher
	notifier   ports.SnapshotNotifier
	journal    ports.UpdateJournal
	clock      kernel.Clock
	logger     *slog.Logger
}

// NewProcessUpdateCommandHandler wires the update pipeline.
func NewProcessUpdateCommandHandler(
	registry ports.ShipmentRegistry,
	dispatcher services.UpdateDispatcher,
	notifier ports.SnapshotNotifier,
	journal ports.UpdateJournal,
	clock kernel.Clock,
	logger *slog.Logger,
) ProcessUpdateCommandHandler {
	return ProcessUpdateCommandHandler{
		registry:   registry,
		dispatcher: dispatcher,
		notifier:   notifier,
		journal:    journal,
		clock:      clock,
		logger:     logger.With("component", "ProcessUpdateCommandHandler"),
	}
}

// Handle processes the update and returns the snapshot it produced.
func (h ProcessUpdateCommandHandler) Handle(ctx context.Context, cmd ProcessUpdateCommand) (shipment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Snapshot{}, err
	}

	evt := cmd.Event()
	if !h.dispatcher.Supports(evt.Kind()) {
		return shipment.Snapshot{}, errs.NewValueIsInvalidErrorWithCause(
			"kind",
			fmt.Errorf("%w: %q", services.ErrUnrecognizedUpdateKind, evt.Kind()),
		)
	}

	if evt.Kind() == update.KindCreated {
		if err := h.createImplicitly(ctx, evt); err != nil {
			return shipment.Snapshot{}, err
		}
	}

	s, err := h.registry.Get(ctx, evt.ShipmentID())
	if err != nil {
		return shipment.Snapshot{}, err
	}

	snapshot, err := h.dispatcher.Dispatch(s, evt)
	if err != nil {
		return shipment.Snapshot{}, err
	}

	if err = h.journal.Append(ctx, evt, h.clock.NowMillis()); err != nil {
		h.logger.WarnContext(ctx, "failed to journal update",
			"shipment_id", evt.ShipmentID(),
			"kind", evt.Kind().String(),
			"error", err)
	}

	h.notifier.Publish(snapshot)

	h.logger.DebugContext(ctx, "update applied",
		"shipment_id", snapshot.ID,
		"kind", evt.Kind().String(),
		"status", snapshot.Status.String(),
		"version", snapshot.Version)

	return snapshot, nil
}

func (h ProcessUpdateCommandHandler) createImplicitly(ctx context.Context, evt update.Event) error {
	if _, err := h.registry.Get(ctx, evt.ShipmentID()); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	payload, _ := evt.Payload()
	variant := shipment.ParseVariantOrDefault(payload)

	_, err := h.registry.Create(ctx, evt.ShipmentID(), variant, evt.Timestamp())
	if err != nil && !errors.Is(err, errs.ErrObjectAlreadyExists) {
		return err
	}

	if err == nil {
		h.logger.InfoContext(ctx, "shipment created from update",
			"shipment_id", evt.ShipmentID(),
			"variant", variant.String())
	}
	return nil
}
