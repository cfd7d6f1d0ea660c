package domain

// Table is a mongo collection name
type Table string

const (
	TableListings        Table = "listings"
	TableListingEvents   Table = "listing_events"
	TableReconciliations Table = "reconciliations"
	TableMarketConfig    Table = "market_config"
)
