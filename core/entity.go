package core

// Entity is a unique identifier for a simulated object
// IDs are allocated monotonically and never reused, so a stale Entity held after
// destruction resolves to nothing rather than to a different object
type Entity uint64

// EntityNone is the zero handle, never allocated
const EntityNone Entity = 0
