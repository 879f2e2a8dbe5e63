package services

import "sync"

// lifecycleMu serializes order and table lifecycle transitions across
// services. Handlers may run concurrently, and the occupancy invariant
// spans two entities, so one writer at a time touches that state.
var lifecycleMu sync.Mutex
