package progress

// Ledger deduplicates engagement events for one open session. Keys credited
// in earlier sessions can be seeded in as prior keys when the storage layer
// kept the exact set; prior keys never count toward UniqueCount.
type Ledger struct {
	prior   map[string]struct{}
	session map[string]struct{}
}

// NewLedger creates a session ledger seeded with the keys already credited
// in previous sessions (nil or empty when none are known).
func NewLedger(priorKeys []string) *Ledger {
	prior := make(map[string]struct{}, len(priorKeys))
	for _, k := range priorKeys {
		prior[k] = struct{}{}
	}
	return &Ledger{
		prior:   prior,
		session: make(map[string]struct{}),
	}
}

// Has reports whether the key was already credited, this session or before.
func (l *Ledger) Has(key string) bool {
	if _, ok := l.prior[key]; ok {
		return true
	}
	_, ok := l.session[key]
	return ok
}

// Record adds the key if it has never been credited. It returns true only on
// a first addition; a duplicate returns false and must not re-credit.
func (l *Ledger) Record(key string) bool {
	if l.Has(key) {
		return false
	}
	l.session[key] = struct{}{}
	return true
}

// UniqueCount is the number of distinct keys recorded this session.
func (l *Ledger) UniqueCount() int {
	return len(l.session)
}

// PriorCount is the number of seeded keys from previous sessions.
func (l *Ledger) PriorCount() int {
	return len(l.prior)
}

// AllKeys returns every credited key, prior and session combined.
func (l *Ledger) AllKeys() []string {
	keys := make([]string, 0, len(l.prior)+len(l.session))
	for k := range l.prior {
		keys = append(keys, k)
	}
	for k := range l.session {
		keys = append(keys, k)
	}
	return keys
}
