package main

// loadingState tracks which named payloads the current view is still
// waiting on.
type loadingState map[string]bool

func newLoadingState(keys ...string) loadingState {
	l := make(loadingState, len(keys))
	for _, k := range keys {
		l[k] = false
	}
	return l
}

// set marks the key as loaded
func (l loadingState) set(key string) {
	l[key] = true
}

// unset marks the key as pending again, before a reload
func (l loadingState) unset(key string) {
	l[key] = false
}

// allLoaded returns true if all keys are loaded,
// otherwise false and one pending key
func (l loadingState) allLoaded() (bool, string) {
	for k, v := range l {
		if !v {
			return false, k
		}
	}

	return true, ""
}
