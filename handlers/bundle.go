package handlers

// HandlerBundle aggregates the HTTP handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Score  *ScoreHandler
	Chat   *ChatHandler
	Vendor *VendorHandler
}
