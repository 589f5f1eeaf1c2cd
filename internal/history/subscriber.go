package history

import (
	"context"

	"github.com/frahmantamala/asset-management/internal/core/events"
)

// RegisterSubscribers wires the ledger onto the event bus. Every workflow
// transition publishes an AssetEvent; the subscriber turns it into a ledger
// row. Because the bus dispatches asynchronously and only logs handler
// errors, a failed history write never fails or rolls back the workflow
// that triggered it.
func RegisterSubscribers(bus *events.EventBus, svc *Service) {
	eventTypes := []string{
		events.EventTypeAssetAssigned,
		events.EventTypeAssetReturned,
		events.EventTypeAssetRequested,
		events.EventTypeRequestRejected,
		events.EventTypeMaintenanceRequested,
		events.EventTypeMaintenanceScheduled,
		events.EventTypeMaintenanceCompleted,
		events.EventTypeAssetUnassigned,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			assetEvent, ok := event.(*events.AssetEvent)
			if !ok {
				return nil
			}
			return svc.Record(
				assetEvent.AssetID,
				assetEvent.UserID,
				assetEvent.Action,
				assetEvent.Note,
				assetEvent.OccurredAt(),
			)
		})
	}
}
