package achieve

import "typedrill/internal/model"

// Queue is a FIFO display queue for unlock notifications. The UI shows one
// entry at a time; Dismiss removes exactly the head.
type Queue struct {
	items []model.Achievement
}

// Enqueue appends achievements to the back of the queue.
func (q *Queue) Enqueue(items ...model.Achievement) {
	q.items = append(q.items, items...)
}

// Peek returns the head without removing it.
func (q *Queue) Peek() (model.Achievement, bool) {
	if len(q.items) == 0 {
		return model.Achievement{}, false
	}
	return q.items[0], true
}

// Dismiss removes the head of the queue.
func (q *Queue) Dismiss() {
	if len(q.items) == 0 {
		return
	}
	q.items = q.items[1:]
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	return len(q.items)
}
