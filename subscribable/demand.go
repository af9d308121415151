package subscribable

// SharedDemand ref-counts demand across several controllers so one
// external resource (a poller, a low-level listener) is acquired when the
// first of them goes online and dropped when the last goes offline. It is
// injected explicitly into each source that shares it.
type SharedDemand struct {
	count   int
	acquire func()
	release func()
}

func NewSharedDemand(acquire, release func()) *SharedDemand {
	return &SharedDemand{acquire: acquire, release: release}
}

// Hooks returns DemandHooks that route a controller's online/offline
// transitions through the shared count.
func (d *SharedDemand) Hooks() DemandHooks {
	return DemandHooks{Online: d.online, Offline: d.offline}
}

func (d *SharedDemand) online() {
	d.count++
	if d.count == 1 && d.acquire != nil {
		d.acquire()
	}
}

func (d *SharedDemand) offline() {
	if d.count == 0 {
		return
	}
	d.count--
	if d.count == 0 && d.release != nil {
		d.release()
	}
}

func (d *SharedDemand) Active() bool {
	return d.count > 0
}
