package event_bus

const (
	EventRemovedType    EventType = "event.removed"
	EventsReorderedType EventType = "event.collection.reordered"
	EventsImportedType  EventType = "event.collection.imported"
)

type EventRemoved struct {
	Id string
}

type EventsReordered struct {
	// Ids is the new order of the whole collection.
	Ids []string
}

type EventsImported struct {
	Count int
	// Ids of the imported events, previously stored events are gone.
	Ids []string
}
