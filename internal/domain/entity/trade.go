package entity

// TradeRecord represents one physical copy of a book being offered or
// requested between users. ExternalID is resolved at read time from the
// catalog-id mapping; a composite read never returns a record without it.
type TradeRecord struct {
	ID              int64  `json:"id"`
	InternalBookID  int64  `json:"internalBookId"`
	OwnerUserID     int64  `json:"ownerUserId"`
	RequesterUserID *int64 `json:"requesterUserId,omitempty"`
	ExternalID      string `json:"externalId"`
	Status          int    `json:"status"`
	Timestamp       int64  `json:"timestamp"`
}

// CatalogIDMapping links the relational service's internal book id to the
// external catalog id. Returned by the composite read alongside the trade
// records and joined client-side.
type CatalogIDMapping struct {
	InternalBookID int64  `json:"internalBookId"`
	ExternalID     string `json:"externalId"`
}
