package source

import (
	"reflect"

	"github.com/lowkeylabs/sourcekit/subscribable"
)

// ManualRecord is the writable associative record source: string keys over
// an open set of fields, with map-shaped change events.
type ManualRecord[V comparable] struct {
	ManualMap[string, V]
}

func NewRecord[V comparable](sched *subscribable.Scheduler, initial map[string]V, hooks ...subscribable.DemandHooks) *ManualRecord[V] {
	return &ManualRecord[V]{ManualMap: *NewMap(sched, initial, hooks...)}
}

// ManualFixedRecord is the writable fixed-shape record source. T must be a
// struct; Set diffs the exported fields of the proposed record against the
// current one and dispatches one change per differing field. Field
// equality uses reflect.DeepEqual, so field types need not be comparable.
type ManualFixedRecord[T any] struct {
	val       T
	preHold   T
	ctrl      *subscribable.Controller[[]FieldChange]
	status    subscribable.SignalStatus[FieldChange]
	finalized bool
}

func NewFixedRecord[T any](sched *subscribable.Scheduler, initial T, hooks ...subscribable.DemandHooks) *ManualFixedRecord[T] {
	if reflect.TypeOf(initial) == nil || reflect.TypeOf(initial).Kind() != reflect.Struct {
		panic("fixed record requires a struct type")
	}
	var h subscribable.DemandHooks
	if len(hooks) > 0 {
		h = hooks[0]
	}
	return &ManualFixedRecord[T]{
		val:  initial,
		ctrl: subscribable.NewController[[]FieldChange](sched, h),
	}
}

func (r *ManualFixedRecord[T]) Snapshot() T {
	return r.val
}

// Set replaces the whole record. A record equal field-by-field to the
// current one is a no-op.
func (r *ManualFixedRecord[T]) Set(next T) {
	if r.finalized {
		panic("cannot set value, source has already been finalized")
	}
	changes := diffFields(r.val, next)
	if len(changes) == 0 {
		return
	}
	r.val = next
	if r.status.IsOnHold() {
		for _, ch := range changes {
			r.status.HoldEvent(ch)
		}
		return
	}
	r.ctrl.Signal(changes)
}

func (r *ManualFixedRecord[T]) Hold() {
	if r.status.InitiateHold() {
		r.preHold = r.val
		r.ctrl.SignalHold()
	}
}

func (r *ManualFixedRecord[T]) Release() {
	if r.finalized {
		r.status.ReleaseHold()
		return
	}
	if !r.status.ReleaseHold() {
		return
	}
	buf := r.status.Flush()
	if len(buf) > 0 && !reflect.DeepEqual(r.val, r.preHold) {
		r.ctrl.Signal(buf)
	}
	r.ctrl.SignalRelease()
}

func (r *ManualFixedRecord[T]) Finalize() {
	if r.finalized {
		return
	}
	r.finalized = true
	if r.status.IsOnHold() {
		buf := r.status.Flush()
		if len(buf) > 0 && !reflect.DeepEqual(r.val, r.preHold) {
			r.ctrl.Signal(buf)
		}
		r.ctrl.SignalRelease()
	}
	r.ctrl.End()
}

func (r *ManualFixedRecord[T]) Finalized() bool {
	return r.finalized
}

func (r *ManualFixedRecord[T]) Subscribe(receiver subscribable.Receiver[[]FieldChange]) *Subscription[T, []FieldChange] {
	return &Subscription[T, []FieldChange]{
		Subscription: r.ctrl.Subscribe(receiver),
		snapshot:     r.Snapshot,
	}
}

func (r *ManualFixedRecord[T]) SubscribeFunc(fn func(changes []FieldChange)) *Subscription[T, []FieldChange] {
	return r.Subscribe(subscribable.ReceiverFunc[[]FieldChange](fn))
}

func diffFields[T any](prev, next T) []FieldChange {
	pv := reflect.ValueOf(prev)
	nv := reflect.ValueOf(next)
	t := pv.Type()
	var changes []FieldChange
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		a := pv.Field(i).Interface()
		b := nv.Field(i).Interface()
		if reflect.DeepEqual(a, b) {
			continue
		}
		changes = append(changes, FieldChange{Kind: ChangeSet, Field: f.Name, Value: b})
	}
	return changes
}
