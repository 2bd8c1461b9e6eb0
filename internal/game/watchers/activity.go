package watchers

// Activity is a snapshot of the standard watchers.
type Activity struct {
	SpellsCast        []string       `json:"spells_cast,omitempty"`
	PermanentsEntered []string       `json:"permanents_entered,omitempty"`
	PermanentsLeft    []string       `json:"permanents_left,omitempty"`
	SourcesTapped     []string       `json:"sources_tapped,omitempty"`
	ManaSpent         int            `json:"mana_spent"`
	ManaLost          int            `json:"mana_lost,omitempty"`
	CommanderCasts    map[string]int `json:"commander_casts,omitempty"`
}

// NewStandardRegistry returns a registry holding every standard watcher.
func NewStandardRegistry() *Registry {
	return NewRegistry(
		NewSpellsCastWatcher(),
		NewCommanderCastsWatcher(),
		NewPermanentsEnteredWatcher(),
		NewPermanentsLeftWatcher(),
		NewSourcesTappedWatcher(),
		NewManaSpentWatcher(),
	)
}

// Activity collects the state of whichever standard watchers r holds.
func (r *Registry) Activity() Activity {
	var a Activity
	if w, ok := r.Get(KeySpellsCast).(*SpellsCastWatcher); ok {
		a.SpellsCast = w.Names()
	}
	if w, ok := r.Get(KeyPermanentsEntered).(*PermanentsEnteredWatcher); ok {
		a.PermanentsEntered = w.Names()
	}
	if w, ok := r.Get(KeyPermanentsLeft).(*PermanentsLeftWatcher); ok {
		a.PermanentsLeft = w.Names()
	}
	if w, ok := r.Get(KeySourcesTapped).(*SourcesTappedWatcher); ok {
		a.SourcesTapped = w.Names()
	}
	if w, ok := r.Get(KeyManaSpent).(*ManaSpentWatcher); ok {
		a.ManaSpent, a.ManaLost = w.Spent(), w.Lost()
	}
	if w, ok := r.Get(KeyCommanderCasts).(*CommanderCastsWatcher); ok && w.ConditionMet() {
		a.CommanderCasts = w.All()
	}
	return a
}
