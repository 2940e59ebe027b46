package interfaces

import "widget-backend/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger pushes refreshed widget tables to external listeners.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast stores the update as the latest snapshot and sends it to subscribers.
	Broadcast(update *models.MLiveUpdate)
}
