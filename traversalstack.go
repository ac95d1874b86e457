package physics2d

// Adapted from https://gist.github.com/bemasher/1777766

type traversalStack struct {
	top  *traversalStackElement
	size int
}

func newTraversalStack() *traversalStack {
	return &traversalStack{
		top:  nil,
		size: 0,
	}
}

type traversalStackElement struct {
	value interface{} // All types satisfy the empty interface, so we can store anything here.
	next  *traversalStackElement
}

// Return the stack's length
func (s traversalStack) GetCount() int {
	return s.size
}

// Push a new element onto the stack
func (s *traversalStack) Push(value interface{}) {
	s.top = &traversalStackElement{value, s.top}
	s.size++
}

// Remove the top element from the stack and return it's value
// If the stack is empty, return nil
func (s *traversalStack) Pop() (value interface{}) {
	if s.size > 0 {
		value, s.top = s.top.value, s.top.next
		s.size--
		return
	}
	return nil
}
