package http

import (
	"encoding/json"

	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/generated/servers"

	"github.com/samber/lo"
)

// toShipmentResponse maps a snapshot to its wire form. lo.Map always
// allocates, so collections encode as JSON arrays even when empty.
func toShipmentResponse(snapshot shipment.Snapshot) servers.Shipment {
	return servers.Shipment{
		Id:                            snapshot.ID,
		Status:                        snapshot.Status.String(),
		CurrentLocation:               snapshot.CurrentLocation,
		ExpectedDeliveryDateTimestamp: snapshot.ExpectedDeliveryTimestamp,
		Notes: lo.Map(snapshot.Notes, func(note shipment.Note, _ int) servers.Note {
			return servers.Note{
				Message:   note.Message(),
				Timestamp: note.Timestamp(),
			}
		}),
		Violations: lo.Map(snapshot.Violations, func(violation string, _ int) string {
			return violation
		}),
		UpdateHistory: lo.Map(snapshot.UpdateHistory, func(entry shipment.ShippingUpdate, _ int) servers.ShippingUpdate {
			return servers.ShippingUpdate{
				PreviousStatus: entry.PreviousStatus().String(),
				NewStatus:      entry.NewStatus().String(),
				Timestamp:      entry.Timestamp(),
			}
		}),
	}
}

// SnapshotEncoder renders snapshots as the same JSON document served by
// GET /shipments/{id}. It implements ports.SnapshotEncoder.
type SnapshotEncoder struct{}

func NewSnapshotEncoder() SnapshotEncoder {
	return SnapshotEncoder{}
}

func (SnapshotEncoder) Encode(snapshot shipment.Snapshot) ([]byte, error) {
	return json.Marshal(toShipmentResponse(snapshot))
}
