// Package viewstate models the client-side navigation of a feature area:
// the list/detail/create/edit view machine, the per-entity list filters and
// the shared nav menu. It has no HTTP or storage dependencies so a UI layer
// can drive it directly.
package viewstate

// View identifies which screen of a feature area is showing.
type View string

const (
	ViewList   View = "list"
	ViewDetail View = "detail"
	ViewCreate View = "create"
	ViewEdit   View = "edit"
)

type historyEntry struct {
	view     View
	selected interface{}
}

// Navigator is the view machine for one feature area. It starts on the list
// view. Transitions push the prior view onto a history stack so a browser
// back button can unwind them one at a time.
type Navigator struct {
	view     View
	selected interface{}
	err      error
	history  []historyEntry

	// onListEntered fires every time the machine lands on the list view,
	// including at construction. List entry means the data may be stale.
	onListEntered func()
}

// NewNavigator returns a navigator on the list view. refetch may be nil.
func NewNavigator(refetch func()) *Navigator {
	n := &Navigator{view: ViewList, onListEntered: refetch}
	n.notifyList()
	return n
}

func (n *Navigator) notifyList() {
	if n.onListEntered != nil {
		n.onListEntered()
	}
}

// View returns the current view.
func (n *Navigator) View() View { return n.view }

// Selected returns the record backing the detail or edit view, nil on list
// and create.
func (n *Navigator) Selected() interface{} { return n.selected }

// Err returns the error from the last failed submit, cleared by any
// successful transition.
func (n *Navigator) Err() error { return n.err }

// Push records the current view on the history stack and switches to v with
// the given record. It is the primitive behind Select, Edit and Create.
func (n *Navigator) Push(v View, record interface{}) {
	n.history = append(n.history, historyEntry{view: n.view, selected: n.selected})
	n.view = v
	n.selected = record
	n.err = nil
	if v == ViewList {
		n.selected = nil
		n.notifyList()
	}
}

// Pop unwinds one history entry. Popping with an empty stack is a no-op, so
// repeated browser-back presses past the first screen do nothing.
func (n *Navigator) Pop() {
	if len(n.history) == 0 {
		return
	}
	top := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	n.view = top.view
	n.selected = top.selected
	n.err = nil
	if n.view == ViewList {
		n.selected = nil
		n.notifyList()
	}
}

// Select opens the detail view for a record.
func (n *Navigator) Select(record interface{}) {
	n.Push(ViewDetail, record)
}

// Edit opens the edit form for the selected record. Without a selection it
// is a no-op.
func (n *Navigator) Edit() {
	if n.selected == nil {
		return
	}
	n.Push(ViewEdit, n.selected)
}

// Create opens the blank create form.
func (n *Navigator) Create() {
	n.Push(ViewCreate, nil)
}

// SubmitSucceeded leaves the form after a successful save. A finished edit
// lands back on the detail view holding the updated record, with the edit
// step dropped from the history so the back button skips it. A finished
// create is spent entirely: unwind to the list and refetch.
func (n *Navigator) SubmitSucceeded(updated interface{}) {
	if n.view == ViewEdit {
		if len(n.history) > 0 {
			n.history = n.history[:len(n.history)-1]
		}
		n.view = ViewDetail
		n.selected = updated
		n.err = nil
		return
	}
	n.history = nil
	n.view = ViewList
	n.selected = nil
	n.err = nil
	n.notifyList()
}

// SubmitFailed keeps the form up with its state intact and records the
// error for the banner.
func (n *Navigator) SubmitFailed(err error) {
	n.err = err
}

// Back unwinds to the previous view. With no history it falls back to the
// list; on the list already it is a no-op.
func (n *Navigator) Back() {
	if len(n.history) > 0 {
		n.Pop()
		return
	}
	if n.view == ViewList {
		return
	}
	n.view = ViewList
	n.selected = nil
	n.err = nil
	n.notifyList()
}
