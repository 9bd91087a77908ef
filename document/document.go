package document

import "github.com/google/uuid"

// Document is a titled, ordered list of nodes.
type Document struct {
	ID    int64
	Title string
	Nodes []Node
}

// Placement says on which side of the target a moved node lands.
type Placement int

const (
	Before Placement = iota
	After
)

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	out := &Document{ID: d.ID, Title: d.Title}
	if d.Nodes != nil {
		out.Nodes = make([]Node, len(d.Nodes))
		for i, n := range d.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	return out
}

// Index returns the position of the node with id, or -1.
func (d *Document) Index(id uuid.UUID) int {
	for i, n := range d.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Node returns the node with id.
func (d *Document) Node(id uuid.UUID) (Node, bool) {
	i := d.Index(id)
	if i < 0 {
		return Node{}, false
	}
	return d.Nodes[i], true
}

// InsertAt inserts n at index, clamped to [0, len].
func (d *Document) InsertAt(index int, n Node) {
	index = clampIndex(index, len(d.Nodes))
	d.Nodes = append(d.Nodes, Node{})
	copy(d.Nodes[index+1:], d.Nodes[index:])
	d.Nodes[index] = n
}

// Append adds n at the end.
func (d *Document) Append(n Node) {
	d.Nodes = append(d.Nodes, n)
}

// InsertAfter inserts n right after the node with id.
func (d *Document) InsertAfter(id uuid.UUID, n Node) error {
	i := d.Index(id)
	if i < 0 {
		return ErrNodeNotFound
	}
	d.InsertAt(i+1, n)
	return nil
}

// Remove deletes the node with id.
func (d *Document) Remove(id uuid.UUID) error {
	i := d.Index(id)
	if i < 0 {
		return ErrNodeNotFound
	}
	d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)
	return nil
}

// Replace swaps the node with id for n, keeping its position.
func (d *Document) Replace(id uuid.UUID, n Node) error {
	i := d.Index(id)
	if i < 0 {
		return ErrNodeNotFound
	}
	d.Nodes[i] = n
	return nil
}

// Previous returns the node right before id. The first node has none.
func (d *Document) Previous(id uuid.UUID) (Node, bool) {
	i := d.Index(id)
	if i <= 0 {
		return Node{}, false
	}
	return d.Nodes[i-1], true
}

// Next returns the node right after id.
func (d *Document) Next(id uuid.UUID) (Node, bool) {
	i := d.Index(id)
	if i < 0 || i+1 >= len(d.Nodes) {
		return Node{}, false
	}
	return d.Nodes[i+1], true
}

// Move relocates the node at from so that it sits immediately before or
// after the node currently at target. Out of range indices are ignored.
func (d *Document) Move(from, target int, p Placement) {
	n := len(d.Nodes)
	if from < 0 || from >= n || target < 0 || target >= n || from == target {
		return
	}
	node := d.Nodes[from]
	d.Nodes = append(d.Nodes[:from], d.Nodes[from+1:]...)

	to := target
	if from < target {
		to--
	}
	if p == After {
		to++
	}
	d.InsertAt(to, node)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
