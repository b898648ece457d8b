package mediadex

import (
	"github.com/kailas-cloud/mediadex/internal/domain"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/domain/search/page"
	"github.com/kailas-cloud/mediadex/internal/domain/search/term"
	chiTransport "github.com/kailas-cloud/mediadex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/mediadex/internal/usecase/health"
	"github.com/kailas-cloud/mediadex/internal/usecase/invalidation"
	searchuc "github.com/kailas-cloud/mediadex/internal/usecase/search"
)

type (
	// Document is the full flattened document of one medium.
	Document = medium.Full
	// TinyDocument is the document the search engine scans.
	TinyDocument = medium.Tiny
	// Rating is a content rating: u, s, q or e.
	Rating = medium.Rating
	// Visibility is what a caller may see.
	Visibility = searchuc.Visibility
	// PageRequest is a requested page, 1-based.
	PageRequest = page.Request
	// Page is one page of search results.
	Page = page.Page[medium.Full]
	// Event signals a change to the relational data.
	Event = invalidation.Event
	// Rule is a named constraint media can violate.
	Rule = term.Rule
	// Rules resolves rules by index.
	Rules = term.Rules
	// HealthReport is the status of the backing stores.
	HealthReport = healthuc.Report
	// VisibilityFunc decides what the caller of an HTTP request may see.
	VisibilityFunc = chiTransport.VisibilityFunc
)

// Ratings.
const (
	Unrated      = medium.Unrated
	Safe         = medium.Safe
	Questionable = medium.Questionable
	Explicit     = medium.Explicit
)

// Restricted is the visibility of an anonymous safe-for-work caller.
var Restricted = searchuc.Restricted

// BearerVisibility grants full visibility to requests bearing one of the admin keys.
var BearerVisibility = chiTransport.BearerVisibility

// Event constructors.
var (
	TagGraphChanged = invalidation.TagGraphChangedEvent
	MediumReplaced  = invalidation.MediumReplacedEvent
	MediaAdded      = invalidation.MediaAddedEvent
	MediaUpdated    = invalidation.MediaUpdatedEvent
	MediumDeleted   = invalidation.MediumDeletedEvent
	MetadataChanged = invalidation.MetadataChangedEvent
)

// Errors.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrCorruptCacheEntry = domain.ErrCorruptCacheEntry
	ErrSourceUnavailable = domain.ErrSourceUnavailable
	ErrWrongEntityType   = domain.ErrWrongEntityType
)
