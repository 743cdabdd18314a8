package kernel

import "math/bits"

// scheduler is the ready-queue core: a bitmap of non-empty priority levels
// plus one FIFO ring per level, giving O(1) highest-priority lookup and
// O(1) insert/remove (spec.md §4.C). Multiple pending activations of the
// same basic task occupy distinct slots at that task's priority; extended
// tasks occupy at most one.
//
// bitmap only supports 64 priority levels (bits.Len64), which comfortably
// covers any deeply-embedded ECU's static priority table; Config.Validate
// rejects a MaxPriority that would not fit.
const maxSchedulerPriority = 63

type scheduler struct {
	bitmap uint64
	levels []*ring[TaskID] // indexed by priority 0..MaxPriority
}

func newScheduler(cfg Config) *scheduler {
	// size each level's ring to the sum of activation limits of tasks
	// declared at that priority, so Insert can never overflow it — the
	// static object model's "no heap" design note applied to the ready
	// queue.
	capacities := make([]int, int(cfg.MaxPriority)+1)
	for _, t := range cfg.Tasks {
		capacities[t.Priority] += int(t.MaxActivations)
	}
	levels := make([]*ring[TaskID], len(capacities))
	for p, c := range capacities {
		if c > 0 {
			levels[p] = newRing[TaskID](c)
		}
	}
	return &scheduler{levels: levels}
}

// Insert places task t at the tail of its priority level's FIFO.
func (s *scheduler) Insert(priority uint8, t TaskID) {
	lvl := s.levels[priority]
	lvl.PushBack(t)
	s.bitmap |= 1 << priority
}

// RemoveHead pops the task at the front of priority level's FIFO.
func (s *scheduler) RemoveHead(priority uint8) TaskID {
	lvl := s.levels[priority]
	t := lvl.PopFront()
	if lvl.Len() == 0 {
		s.bitmap &^= 1 << priority
	}
	return t
}

// HighestPriority returns the highest occupied priority level and true, or
// (0, false) if the ready queue is empty.
func (s *scheduler) HighestPriority() (uint8, bool) {
	if s.bitmap == 0 {
		return 0, false
	}
	return uint8(bits.Len64(s.bitmap) - 1), true
}

// PeekHighest returns the task at the head of the highest occupied
// priority level without removing it.
func (s *scheduler) PeekHighest() (TaskID, uint8, bool) {
	p, ok := s.HighestPriority()
	if !ok {
		return InvalidTaskID, 0, false
	}
	return s.levels[p].Front(), p, true
}

// PopHighest removes and returns the task at the head of the highest
// occupied priority level.
func (s *scheduler) PopHighest() (TaskID, uint8, bool) {
	t, p, ok := s.PeekHighest()
	if !ok {
		return InvalidTaskID, 0, false
	}
	s.RemoveHead(p)
	return t, p, true
}
