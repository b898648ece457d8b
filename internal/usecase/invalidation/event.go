package invalidation

import "fmt"

// Kind classifies a change to the relational data.
type Kind int

// Event kinds.
const (
	TagGraphChanged Kind = iota + 1
	MediumReplaced
	MediaAdded
	MediaUpdated
	MediumDeleted
	MetadataChanged
)

func (k Kind) String() string {
	switch k {
	case TagGraphChanged:
		return "tag_graph_changed"
	case MediumReplaced:
		return "medium_replaced"
	case MediaAdded:
		return "media_added"
	case MediaUpdated:
		return "media_updated"
	case MediumDeleted:
		return "medium_deleted"
	case MetadataChanged:
		return "metadata_changed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a change signal. Which fields are set depends on Kind.
type Event struct {
	Kind Kind
	IDs  []int64
	// Hash is the content hash the cache may still hold for IDs[0]:
	// the old hash of a replaced file, the hash of a deleted medium.
	Hash string
}

// TagGraphChangedEvent reports a renamed tag or an added or removed alias or implication.
func TagGraphChangedEvent() Event { return Event{Kind: TagGraphChanged} }

// MediumReplacedEvent reports a new file for medium id, formerly stored under oldHash.
func MediumReplacedEvent(id int64, oldHash string) Event {
	return Event{Kind: MediumReplaced, IDs: []int64{id}, Hash: oldHash}
}

// MediaAddedEvent reports newly created media.
func MediaAddedEvent(ids ...int64) Event { return Event{Kind: MediaAdded, IDs: ids} }

// MediaUpdatedEvent reports a batch edit of media.
func MediaUpdatedEvent(ids ...int64) Event { return Event{Kind: MediaUpdated, IDs: ids} }

// MediumDeletedEvent reports a deleted medium.
func MediumDeletedEvent(id int64, hash string) Event {
	return Event{Kind: MediumDeleted, IDs: []int64{id}, Hash: hash}
}

// MetadataChangedEvent reports edited tags, absent tags or rating of one medium.
func MetadataChangedEvent(id int64, hash string) Event {
	return Event{Kind: MetadataChanged, IDs: []int64{id}, Hash: hash}
}
