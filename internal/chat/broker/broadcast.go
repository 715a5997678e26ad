package broker

// Delivery - result of single broadcast.
type Delivery struct {
	// Recipients - size of the snapshot the line was addressed to.
	Recipients int
	// Failed - send errors by member ID.
	Failed map[string]error
}

// Delivered - returns number of members which accepted the line.
func (d Delivery) Delivered() int {
	return d.Recipients - len(d.Failed)
}

// Broadcast - sends line to every member of the snapshot taken at call time.
// Members are served one by one in the caller goroutine, so lines broadcast
// by the same caller arrive in the same order everywhere.
// A failed send does not stop delivery to the rest.
func (r *Registry) Broadcast(line string) Delivery {
	members := r.Snapshot()
	d := Delivery{Recipients: len(members)}
	for _, m := range members {
		if err := m.Send(line); err != nil {
			if d.Failed == nil {
				d.Failed = make(map[string]error)
			}
			d.Failed[m.ID()] = err
		}
	}
	return d
}
