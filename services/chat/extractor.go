package chat

import (
	"context"

	"oneq/models"
)

// Extractor is the NLU collaborator that pulls structured request fields
// out of a user utterance. Implementations must honor the context deadline;
// the orchestrator treats any error, including a timeout, as a failed turn
// with a no-op merge.
type Extractor interface {
	Extract(ctx context.Context, history []models.SessionTurn, utterance string) (models.PartialPrintRequest, error)
}
