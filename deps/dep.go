package deps

import (
	"slices"
	"sync/atomic"
)

// Subscriber is notified when a Dep it subscribed to changes.
type Subscriber interface {
	Update()
}

// Target is the subscriber currently collecting dependencies.
type Target interface {
	Subscriber
	AddDep(dep *Dep)
}

var nextID atomic.Uint64

// Dep is a notification point with an ordered set of subscribers.
type Dep struct {
	ID   uint64
	subs []Subscriber
}

func NewDep() *Dep {
	return &Dep{
		ID: nextID.Add(1),
	}
}

func (d *Dep) AddSub(sub Subscriber) {
	if slices.Contains(d.subs, sub) {
		return
	}
	d.subs = append(d.subs, sub)
}

func (d *Dep) RemoveSub(sub Subscriber) {
	d.subs = slices.DeleteFunc(d.subs, func(s Subscriber) bool {
		return s == sub
	})
}

func (d *Dep) Len() int {
	return len(d.subs)
}

// Depend registers d with the current target, if any.
func (d *Dep) Depend() {
	if target := CurrentTarget(); target != nil {
		target.AddDep(d)
	}
}

// Notify calls Update on a snapshot of the subscribers, in subscription order.
func (d *Dep) Notify() {
	for _, sub := range slices.Clone(d.subs) {
		sub.Update()
	}
}

// target stack, single threaded
var targets []Target

func PushTarget(target Target) {
	targets = append(targets, target)
}

func PopTarget() {
	if len(targets) == 0 {
		return
	}
	targets[len(targets)-1] = nil
	targets = targets[:len(targets)-1]
}

func CurrentTarget() Target {
	if len(targets) == 0 {
		return nil
	}
	return targets[len(targets)-1]
}
