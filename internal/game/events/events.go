package events

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Type indicates the category of a simulation event.
type Type string

const (
	EffectRegistered    Type = "EFFECT_REGISTERED"
	EffectUnregistered  Type = "EFFECT_UNREGISTERED"
	BattlefieldScanned  Type = "BATTLEFIELD_SCANNED"
	LayersApplied       Type = "LAYERS_APPLIED"
	PermanentEntered    Type = "PERMANENT_ENTERED"
	PermanentLeft       Type = "PERMANENT_LEFT"
	TemporaryExpired    Type = "TEMPORARY_EXPIRED"
	ManaAdded           Type = "MANA_ADDED"
	ManaPaid            Type = "MANA_PAID"
	PaymentShortfall    Type = "PAYMENT_SHORTFALL"
	PoolEmptied         Type = "POOL_EMPTIED"
	SourceActivated     Type = "SOURCE_ACTIVATED"
	VariableRuleUnknown Type = "VARIABLE_RULE_UNKNOWN"
	SpellCast           Type = "SPELL_CAST"
	CommanderCast       Type = "COMMANDER_CAST"
	TurnEnded           Type = "TURN_ENDED"
	RegistryMissing     Type = "REGISTRY_MISSING"
)

// Event is a single structured record emitted by the engine. Events are
// informational; nothing in the simulation reads them back.
type Event struct {
	Seq     int            `json:"seq"`
	Type    Type           `json:"type"`
	Source  string         `json:"source,omitempty"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// Sink receives events.
type Sink interface {
	Record(Event)
}

type discard struct{}

func (discard) Record(Event) {}

// Discard drops every event.
var Discard Sink = discard{}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Recorder stores events in memory, in emission order.
type Recorder struct {
	events []Event
	seq    int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends the event, stamping its sequence number.
func (r *Recorder) Record(e Event) {
	r.seq++
	e.Seq = r.seq
	r.events = append(r.events, e)
}

// Events returns all recorded events.
func (r *Recorder) Events() []Event {
	return r.events
}

// OfType returns all events matching the given type.
func (r *Recorder) OfType(t Type) []Event {
	var result []Event
	for _, e := range r.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Last returns the most recent event, or a zero event if none.
func (r *Recorder) Last() Event {
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.events = nil
	r.seq = 0
}

// ZapSink forwards events to a zap logger at debug level.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink writing to logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

// Record logs the event with its fields in key order.
func (z *ZapSink) Record(e Event) {
	fields := make([]zap.Field, 0, len(e.Fields)+2)
	fields = append(fields, zap.String("event", string(e.Type)))
	if e.Source != "" {
		fields = append(fields, zap.String("source", e.Source))
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, e.Fields[k]))
	}
	z.logger.Debug(e.Message, fields...)
}

type tee []Sink

func (t tee) Record(e Event) {
	for _, s := range t {
		s.Record(e)
	}
}

// Tee fans every event out to all non-nil sinks.
func Tee(sinks ...Sink) Sink {
	var out tee
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Emit builds and records an event in one call.
func Emit(s Sink, t Type, source string, fields map[string]any, format string, args ...any) {
	if s == nil {
		return
	}
	s.Record(Event{
		Type:    t,
		Source:  source,
		Message: fmt.Sprintf(format, args...),
		Fields:  fields,
	})
}
